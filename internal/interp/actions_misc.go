package interp

import (
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerMiscActions(d *Dispatch) {
	d.Register("print", actionPrint)
	d.Register("beep", actionBeep)
}

// actionPrint is Jester's Gambit (print): peek the top of
// stack without consuming it. The host environment (cmd/hexagon) is
// responsible for actually surfacing PrintLog entries; here it is
// recorded onto the state for the caller to drain.
func actionPrint(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	top, m, ok := st.IotaAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.PrintLog = append(st.PrintLog, top.Display())
	return nil
}

// actionBeep is a no-op placeholder for the source game's audible
// feedback pattern; it carries no stack effect.
func actionBeep(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return nil
}
