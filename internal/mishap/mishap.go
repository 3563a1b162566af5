// Package mishap implements the runtime/compile-time error taxonomy
// (spec.md §7) and the salvage transform (spec.md §4.7) that lets a
// forgiving host recover a stack after certain failures.
package mishap

import (
	"fmt"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
)

// Kind discriminates the Mishap taxonomy.
type Kind int

const (
	KindNotEnoughIotas Kind = iota
	KindIncorrectIota
	KindMathematicalError
	KindHastyRetrospection
	KindInvalidPattern
	KindExpectedPattern
	KindExpectedValue
	KindInvalidValue
	KindOpCannotBeConsidered
	KindOpNotEnoughArgs
	KindOpExpectedVar
	KindOpExpectedIota
	KindVariableNotAssigned
	KindNoIotaAtIndex
	KindNoAkashicRecord
	KindHoldingIncorrectItem
	KindMatrixWrongSize
	KindEvalMishap
)

// MatrixSize names an expected matrix dimension: a fixed count, an
// upper bound, or "any" (n).
type MatrixSize struct {
	Any   bool
	Max   bool
	Count int
}

func (m MatrixSize) String() string {
	switch {
	case m.Any:
		return "n"
	case m.Max:
		return fmt.Sprintf("(max %d)", m.Count)
	default:
		return fmt.Sprintf("%d", m.Count)
	}
}

// Mishap is a single runtime/compile-time fault, carrying whatever
// payload its Kind needs for its message/hint/salvage.
type Mishap struct {
	Kind Kind

	// NotEnoughIotas / OpNotEnoughArgs
	Need, Have int

	// IncorrectIota
	Index        int
	ExpectedType string
	Received     iotamodel.Iota

	// ExpectedPattern / OpExpectedVar
	Iota iotamodel.Iota

	// ExpectedValue / InvalidValue
	ActionName   string
	ExpectedKind string
	ReceivedKind string

	// VariableNotAssigned
	VarName string

	// NoIotaAtIndex
	HeapIndex int

	// NoAkashicRecord
	LibraryLoc iotamodel.Vector

	// MatrixWrongSize
	MatrixIota                iotamodel.Iota
	ExpectedRows, ExpectedCols MatrixSize

	// EvalMishap
	EvalList  iotamodel.List
	EvalIndex int
	Inner     *Located
}

// Located pairs a Mishap with the Location it fired at; this is the
// (Mishap, Location) pair spec.md's interpreter entry point returns on
// failure, and the payload of EvalMishap's Inner field.
type Located struct {
	Mishap   Mishap
	Location location.Location
}

func (l *Located) Error() string {
	return fmt.Sprintf("%s: %s", l.Location, l.Mishap.Message())
}

// At wraps m with the location it occurred at.
func (m Mishap) At(loc location.Location) *Located {
	return &Located{Mishap: m, Location: loc}
}

// Constructors for each kind, mirroring original_source/src/interpreter/mishap.rs.

func NotEnoughIotas(need, have int) Mishap { return Mishap{Kind: KindNotEnoughIotas, Need: need, Have: have} }

func IncorrectIota(index int, expectedType string, received iotamodel.Iota) Mishap {
	return Mishap{Kind: KindIncorrectIota, Index: index, ExpectedType: expectedType, Received: received}
}

func MathematicalError() Mishap { return Mishap{Kind: KindMathematicalError} }

func HastyRetrospection() Mishap { return Mishap{Kind: KindHastyRetrospection} }

func InvalidPattern() Mishap { return Mishap{Kind: KindInvalidPattern} }

func ExpectedPattern(iota iotamodel.Iota) Mishap { return Mishap{Kind: KindExpectedPattern, Iota: iota} }

func ExpectedValue(action, expected string) Mishap {
	return Mishap{Kind: KindExpectedValue, ActionName: action, ExpectedKind: expected}
}

func InvalidValue(expected, received string) Mishap {
	return Mishap{Kind: KindInvalidValue, ExpectedKind: expected, ReceivedKind: received}
}

func OpCannotBeConsidered() Mishap { return Mishap{Kind: KindOpCannotBeConsidered} }

func OpNotEnoughArgs(n int) Mishap { return Mishap{Kind: KindOpNotEnoughArgs, Need: n} }

func OpExpectedVar(iota iotamodel.Iota) Mishap { return Mishap{Kind: KindOpExpectedVar, Iota: iota} }

func OpExpectedIota() Mishap { return Mishap{Kind: KindOpExpectedIota} }

func VariableNotAssigned(name string) Mishap { return Mishap{Kind: KindVariableNotAssigned, VarName: name} }

func NoIotaAtIndex(index int) Mishap { return Mishap{Kind: KindNoIotaAtIndex, HeapIndex: index} }

func NoAkashicRecord(v iotamodel.Vector) Mishap { return Mishap{Kind: KindNoAkashicRecord, LibraryLoc: v} }

func HoldingIncorrectItem() Mishap { return Mishap{Kind: KindHoldingIncorrectItem} }

func MatrixWrongSize(iota iotamodel.Iota, rows, cols MatrixSize) Mishap {
	return Mishap{Kind: KindMatrixWrongSize, MatrixIota: iota, ExpectedRows: rows, ExpectedCols: cols}
}

func EvalMishap(list iotamodel.List, index int, inner *Located) Mishap {
	return Mishap{Kind: KindEvalMishap, EvalList: list, EvalIndex: index, Inner: inner}
}

// Message is the mishap's one-line user-facing description.
func (m Mishap) Message() string {
	switch m.Kind {
	case KindNotEnoughIotas:
		return fmt.Sprintf("Expected %d arguments but the stack was only %d tall", m.Need, m.Have)
	case KindIncorrectIota:
		return fmt.Sprintf("expected %s at index %d of the stack, but got %s", m.ExpectedType, m.Index, m.Received.Display())
	case KindMathematicalError:
		return "Math broke (domain error)"
	case KindHastyRetrospection:
		return "Expected preceding Introspection"
	case KindInvalidPattern:
		return "This pattern isn't associated with any action"
	case KindExpectedPattern:
		return fmt.Sprintf("Expected Pattern but got %s", m.Iota.Display())
	case KindExpectedValue:
		return fmt.Sprintf("Expected %s value to be supplied but got Nothing", m.ExpectedKind)
	case KindInvalidValue:
		return fmt.Sprintf("Expected %s value to be supplied but got %s", m.ExpectedKind, m.ReceivedKind)
	case KindOpCannotBeConsidered:
		return "Ops cannot be considered"
	case KindOpNotEnoughArgs:
		return fmt.Sprintf("Expected %d arguments", m.Need)
	case KindOpExpectedVar:
		return fmt.Sprintf("Expected argument to be a variable but got iota %s", m.Iota.Display())
	case KindOpExpectedIota:
		return "Expected argument to be an iota"
	case KindVariableNotAssigned:
		return "Variable never assigned"
	case KindNoIotaAtIndex:
		return "No iota found at pointed location"
	case KindNoAkashicRecord:
		return fmt.Sprintf("No akashic record found at %s", m.LibraryLoc.Display())
	case KindHoldingIncorrectItem:
		return "Entity is not holding the right item"
	case KindMatrixWrongSize:
		return fmt.Sprintf("Expected %s by %s matrix but found %s", m.ExpectedRows, m.ExpectedCols, m.MatrixIota.Display())
	case KindEvalMishap:
		return fmt.Sprintf("in list at index %d: %s", m.EvalIndex, m.Inner.Mishap.Message())
	default:
		return "unknown mishap"
	}
}

// Hint is remediation advice, when the source taxonomy defines one.
func (m Mishap) Hint() (string, bool) {
	switch m.Kind {
	case KindOpNotEnoughArgs:
		return "Provide arguments inside the parentheses: Op(arg)", true
	case KindOpExpectedVar:
		return "Use a variable as the argument: Op($var)", true
	case KindOpExpectedIota:
		return "Use an Iota as the argument: Op(1), Op([1, 1, 1]), etc.", true
	case KindVariableNotAssigned:
		return fmt.Sprintf("Assign the variable using Store(%s) or Copy(%s)", m.VarName, m.VarName), true
	case KindNoIotaAtIndex:
		return "This is typically caused by the ravenmind being overwritten via a raw write/local", true
	case KindNoAkashicRecord:
		return "Define an akashic record in a 'config.toml' file", true
	case KindHoldingIncorrectItem:
		return "Define held items in a 'config.toml' file", true
	case KindExpectedValue:
		return fmt.Sprintf("Set a value for this action. Example: %s: %s", m.ActionName, m.ExpectedKind), true
	default:
		return "", false
	}
}
