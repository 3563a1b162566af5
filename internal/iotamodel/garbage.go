package iotamodel

// Garbage is what a mishap's salvage transform pushes in place of a
// value that couldn't be produced: "jumbled juxtaposition" in the
// source game.
type Garbage struct{}

func (Garbage) Kind() Kind       { return KindGarbage }
func (Garbage) TypeName() string { return KindGarbage.String() }
func (Garbage) Display() string  { return "GARBAGE" }

func (Garbage) Tolerates(other Iota) bool {
	_, ok := other.(Garbage)
	return ok
}

func (Garbage) SerializeNBT() string {
	return `{"hexcasting:type": "hexcasting:garbage", "hexcasting:data": 0}`
}

func (Garbage) SerializeJSON() any {
	return map[string]any{"iotaType": "garbage", "value": nil}
}
