// Package location identifies where in a Hexagon program something came
// from: a point in source text, a position inside an evaluated list, or
// nowhere in particular.
package location

import "fmt"

// Kind discriminates the Location variants.
type Kind int

const (
	// Unknown means the location could not be determined (e.g. a
	// pattern synthesized by the compiler rather than parsed).
	Unknown Kind = iota
	// Source is a line:column position in an input file.
	Source
	// List is an index into a list that is being evaluated, used when
	// a mishap fires while `eval`-ing a quoted list rather than while
	// interpreting parsed source.
	List
)

// Location pins a Mishap, or a compiled iota, to where it came from.
type Location struct {
	Kind   Kind
	Line   int
	Col    int
	Index  int
	Source string // file path, empty for non-Source locations
}

// UnknownLocation is the zero-information location.
var UnknownLocation = Location{Kind: Unknown}

// AtSource builds a Source location.
func AtSource(path string, line, col int) Location {
	return Location{Kind: Source, Source: path, Line: line, Col: col}
}

// AtListIndex builds a List location.
func AtListIndex(index int) Location {
	return Location{Kind: List, Index: index}
}

// String renders the location the way the CLI reports it: "path:line:col"
// for source locations, "list[index]" for list locations, "?" otherwise.
func (l Location) String() string {
	switch l.Kind {
	case Source:
		return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Col)
	case List:
		return fmt.Sprintf("list[%d]", l.Index)
	default:
		return "?"
	}
}
