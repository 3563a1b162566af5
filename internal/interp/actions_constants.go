package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

// registerConstantActions wires the registry's "constants" catalogue
// section (registry.go's Vector/Arc's/Circle's/Euler's/Nullary/True/
// False Reflections; Vacant Reflection's "empty_list" is registered
// alongside the rest of the list actions in actions_lists.go): each
// just pushes a fixed iota and ignores the Pattern's (always nil)
// value.
func registerConstantActions(d *Dispatch) {
	d.Register("const/vec/px", constantPush(iotamodel.NewVector(1, 0, 0)))
	d.Register("const/vec/py", constantPush(iotamodel.NewVector(0, 1, 0)))
	d.Register("const/vec/pz", constantPush(iotamodel.NewVector(0, 0, 1)))
	d.Register("const/vec/nx", constantPush(iotamodel.NewVector(-1, 0, 0)))
	d.Register("const/vec/ny", constantPush(iotamodel.NewVector(0, -1, 0)))
	d.Register("const/vec/nz", constantPush(iotamodel.NewVector(0, 0, -1)))
	d.Register("const/vec/0", constantPush(iotamodel.NewVector(0, 0, 0)))
	d.Register("const/double/pi", constantPush(iotamodel.NewNumber(registry.Pi)))
	d.Register("const/double/tau", constantPush(iotamodel.NewNumber(registry.Tau)))
	d.Register("const/double/e", constantPush(iotamodel.NewNumber(registry.E)))
	d.Register("const/null", constantPush(iotamodel.Null{}))
	d.Register("const/true", constantPush(iotamodel.NewBool(true)))
	d.Register("const/false", constantPush(iotamodel.NewBool(false)))
}

// constantPush builds an ActionFunc that pushes the same fixed iota
// every time, for the value-less constant-reflection patterns.
func constantPush(iota iotamodel.Iota) ActionFunc {
	return func(st *State, reg *registry.Registry, value any) *mishap.Mishap {
		st.Push(iota)
		return nil
	}
}
