package iotamodel

import "fmt"

// String is an ordinary text iota, exact-equality only.
type String struct {
	Value string
}

func NewString(v string) String { return String{Value: v} }

func (s String) Kind() Kind       { return KindString }
func (s String) TypeName() string { return KindString.String() }
func (s String) Display() string  { return fmt.Sprintf("%q", s.Value) }

func (s String) Tolerates(other Iota) bool {
	o, ok := other.(String)
	return ok && o.Value == s.Value
}

func (s String) SerializeNBT() string {
	return fmt.Sprintf(`{"hexcasting:type": "hexcasting:string", "hexcasting:data": %q}`, s.Value)
}

func (s String) SerializeJSON() any {
	return map[string]any{"iotaType": "string", "value": s.Value}
}
