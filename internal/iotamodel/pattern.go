package iotamodel

import (
	"fmt"

	"github.com/hexcompiler/hexagon/internal/location"
)

// BookkeeperMask is the "-"/"v" mask carried by a mask/bookkeeper
// pattern's value (keep/drop per stack slot).
type BookkeeperMask string

// Pattern is a named glyph: its draw Signature, the catalogue
// InternalName it was resolved from (needed to dispatch the
// value-bearing patterns, whose Signature is "" so several of them
// don't collide with one another in a signature-keyed lookup), an
// optional embedded value (an Iota for e.g. `number`, a
// BookkeeperMask for `mask`), and the source Location it was parsed
// or synthesized at.
type Pattern struct {
	Signature    Signature
	InternalName string
	Value        any // nil, an Iota, or a BookkeeperMask
	Location     location.Location
}

func NewPattern(sig Signature, internalName string, value any, loc location.Location) Pattern {
	return Pattern{Signature: sig, InternalName: internalName, Value: value, Location: loc}
}

func (p Pattern) Kind() Kind       { return KindPattern }
func (p Pattern) TypeName() string { return KindPattern.String() }

func (p Pattern) Display() string {
	switch v := p.Value.(type) {
	case nil:
		return fmt.Sprintf("<pattern %s>", p.Signature)
	case BookkeeperMask:
		return fmt.Sprintf("<pattern %s: %s>", p.Signature, string(v))
	case Iota:
		return fmt.Sprintf("<pattern %s: %s>", p.Signature, v.Display())
	default:
		return fmt.Sprintf("<pattern %s>", p.Signature)
	}
}

// Tolerates compares patterns by signature only, per spec.md §3 — an
// embedded value difference (e.g. two `number` patterns with different
// literals) does not affect pattern equality.
func (p Pattern) Tolerates(other Iota) bool {
	o, ok := other.(Pattern)
	return ok && p.Signature.Equal(o.Signature)
}

func (p Pattern) SerializeNBT() string {
	return fmt.Sprintf(
		`{"hexcasting:type": "hexcasting:pattern", "hexcasting:data": {"angles": [B; %s], "start_dir": 1b}}`,
		encodeAngles(p.Signature),
	)
}

func (p Pattern) SerializeJSON() any {
	value := any(nil)
	switch v := p.Value.(type) {
	case BookkeeperMask:
		value = string(v)
	case Iota:
		value = v.SerializeJSON()
	}
	return map[string]any{
		"iotaType": "pattern",
		"value": map[string]any{
			"signature": string(p.Signature),
			"value":     value,
		},
	}
}

// angleByte maps a turn direction to the byte code the game uses for
// pattern angles: w=0 e=1 d=2 s=3 a=4 q=5.
func angleByte(d byte) int {
	switch d {
	case 'w':
		return 0
	case 'e':
		return 1
	case 'd':
		return 2
	case 's':
		return 3
	case 'a':
		return 4
	case 'q':
		return 5
	default:
		return 0
	}
}

func encodeAngles(sig Signature) string {
	out := ""
	for i := 0; i < len(sig); i++ {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%dB", angleByte(sig[i]))
	}
	return out
}
