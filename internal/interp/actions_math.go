package interp

import (
	"math"

	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerMathActions(d *Dispatch) {
	d.Register("add", actionAdd)
	d.Register("sub", actionSub)
	d.Register("mul_dot", actionMulDot)
	d.Register("div_cross", actionDivCross)
	d.Register("abs_len", actionAbsLen)
	d.Register("pow_proj", actionPowProj)
	d.Register("floor", actionFloor)
	d.Register("ceil", actionCeil)
	d.Register("construct_vec", actionConstructVec)
	d.Register("deconstruct_vec", actionDeconstructVec)
	d.Register("coerce_axial", actionCoerceAxial)
	d.Register("and", boolBinary(func(a, b bool) bool { return a && b }))
	d.Register("or", boolBinary(func(a, b bool) bool { return a || b }))
	d.Register("xor", boolBinary(func(a, b bool) bool { return a != b }))
	d.Register("greater", actionGreater)
	d.Register("less", actionLess)
	d.Register("greater_eq", actionGreaterEq)
	d.Register("less_eq", actionLessEq)
	d.Register("equals", actionEquals)
	d.Register("not_equals", actionNotEquals)
	d.Register("not", actionNot)
	d.Register("bool_coerce", actionBoolCoerce)
	d.Register("sin", numUnary(math.Sin))
	d.Register("cos", numUnary(math.Cos))
	d.Register("tan", numUnary(math.Tan))
	d.Register("arcsin", numUnary(math.Asin))
	d.Register("arccos", numUnary(math.Acos))
	d.Register("arctan", numUnary(math.Atan))
	d.Register("logarithm", actionLogarithm)
	d.Register("modulo", actionModulo)
	d.Register("and_bit", intBinary(func(a, b int) int { return a & b }))
	d.Register("or_bit", intBinary(func(a, b int) int { return a | b }))
	d.Register("xor_bit", intBinary(func(a, b int) int { return a ^ b }))
	d.Register("not_bit", actionNotBit)
}

// actionAdd is Additive Distillation: Number+Number, Vector+Vector, or
// List+List (concatenation is `concat`'s job; here Number/Vector only,
// per Hex Casting's overload set).
func actionAdd(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numOrVecBinary(st, func(a, b float64) float64 { return a + b },
		func(a, b iotamodel.Vector) iotamodel.Vector { return iotamodel.NewVector(a.X+b.X, a.Y+b.Y, a.Z+b.Z) })
}

func actionSub(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numOrVecBinary(st, func(a, b float64) float64 { return a - b },
		func(a, b iotamodel.Vector) iotamodel.Vector { return iotamodel.NewVector(a.X-b.X, a.Y-b.Y, a.Z-b.Z) })
}

// actionMulDot is Multiplicative Distillation: Number*Number,
// Number*Vector (scale), or Vector.Vector (dot product, pushes Number).
func actionMulDot(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	bn, bv, bIsNum, m, ok := st.NumOrVecAt(0, 2)
	if !ok {
		return ptr(m)
	}
	an, av, aIsNum, m, ok := st.NumOrVecAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)

	switch {
	case aIsNum && bIsNum:
		st.Push(iotamodel.NewNumber(an.Value * bn.Value))
	case !aIsNum && bIsNum:
		st.Push(iotamodel.NewVector(av.X*bn.Value, av.Y*bn.Value, av.Z*bn.Value))
	case aIsNum && !bIsNum:
		st.Push(iotamodel.NewVector(bv.X*an.Value, bv.Y*an.Value, bv.Z*an.Value))
	default:
		st.Push(iotamodel.NewNumber(av.X*bv.X + av.Y*bv.Y + av.Z*bv.Z))
	}
	return nil
}

// actionDivCross is Division Distillation: Number/Number,
// Vector/Number, or Vector x Vector (cross product). The deeper
// operand is the dividend/left cross factor (original_source/src/
// patterns/hex_casting/math.rs's div_cross).
func actionDivCross(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	bn, bv, bIsNum, m, ok := st.NumOrVecAt(0, 2)
	if !ok {
		return ptr(m)
	}
	an, av, aIsNum, m, ok := st.NumOrVecAt(1, 2)
	if !ok {
		return ptr(m)
	}

	switch {
	case aIsNum && bIsNum:
		if an.Value == 0 {
			return ptr(mishap.MathematicalError())
		}
		st.RemoveArgs(2)
		st.Push(iotamodel.NewNumber(bn.Value / an.Value))
	case aIsNum && !bIsNum:
		if an.Value == 0 {
			return ptr(mishap.MathematicalError())
		}
		st.RemoveArgs(2)
		st.Push(iotamodel.NewVector(bv.X/an.Value, bv.Y/an.Value, bv.Z/an.Value))
	case !aIsNum && !bIsNum:
		st.RemoveArgs(2)
		st.Push(iotamodel.NewVector(
			bv.Y*av.Z-bv.Z*av.Y,
			bv.Z*av.X-bv.X*av.Z,
			bv.X*av.Y-bv.Y*av.X,
		))
	default:
		return ptr(mishap.IncorrectIota(1, "Number or Vector", iotamodel.Number{Value: an.Value}))
	}
	return nil
}

// actionAbsLen is Length Purification: |Number| or ‖Vector‖.
func actionAbsLen(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	n, v, isNum, m, ok := st.NumOrVecAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	if isNum {
		st.Push(iotamodel.NewNumber(math.Abs(n.Value)))
	} else {
		st.Push(iotamodel.NewNumber(math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
	}
	return nil
}

// actionPowProj is Power Distillation: Number^Number, or Vector
// projected onto Vector.
func actionPowProj(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	bn, bv, bIsNum, m, ok := st.NumOrVecAt(0, 2)
	if !ok {
		return ptr(m)
	}
	an, av, aIsNum, m, ok := st.NumOrVecAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)

	if aIsNum && bIsNum {
		st.Push(iotamodel.NewNumber(math.Pow(bn.Value, an.Value)))
		return nil
	}
	if !aIsNum && !bIsNum {
		denom := bv.X*bv.X + bv.Y*bv.Y + bv.Z*bv.Z
		if denom == 0 {
			return ptr(mishap.MathematicalError())
		}
		scale := (av.X*bv.X + av.Y*bv.Y + av.Z*bv.Z) / denom
		st.Push(iotamodel.NewVector(bv.X*scale, bv.Y*scale, bv.Z*scale))
		return nil
	}
	return ptr(mishap.IncorrectIota(0, "Number or Vector matching operand 1", iotamodel.NewNumber(bn.Value)))
}

func actionFloor(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numUnary(math.Floor)(st, reg, value)
}

func actionCeil(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numUnary(math.Ceil)(st, reg, value)
}

// actionConstructVec is Vector Exaltation: three Numbers -> Vector.
func actionConstructVec(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	z, m, ok := st.NumberAt(0, 3)
	if !ok {
		return ptr(m)
	}
	y, m, ok := st.NumberAt(1, 3)
	if !ok {
		return ptr(m)
	}
	x, m, ok := st.NumberAt(2, 3)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(3)
	st.Push(iotamodel.NewVector(x.Value, y.Value, z.Value))
	return nil
}

// actionDeconstructVec is Vector Disintegration: Vector -> x,y,z.
func actionDeconstructVec(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, m, ok := st.VectorAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewNumber(v.X))
	st.Push(iotamodel.NewNumber(v.Y))
	st.Push(iotamodel.NewNumber(v.Z))
	return nil
}

// actionCoerceAxial snaps a Vector to its dominant axis direction.
func actionCoerceAxial(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, m, ok := st.VectorAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax >= ay && ax >= az:
		st.Push(iotamodel.NewVector(math.Copysign(1, v.X), 0, 0))
	case ay >= ax && ay >= az:
		st.Push(iotamodel.NewVector(0, math.Copysign(1, v.Y), 0))
	default:
		st.Push(iotamodel.NewVector(0, 0, math.Copysign(1, v.Z)))
	}
	return nil
}

func actionGreater(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numCompare(st, func(a, b float64) bool { return a > b })
}
func actionLess(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numCompare(st, func(a, b float64) bool { return a < b })
}
func actionGreaterEq(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numCompare(st, func(a, b float64) bool { return a >= b })
}
func actionLessEq(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	return numCompare(st, func(a, b float64) bool { return a <= b })
}

// actionEquals is tolerant equality over any two iotas.
func actionEquals(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	b, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	a, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewBool(a.Tolerates(b)))
	return nil
}

func actionNotEquals(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	b, m, ok := st.IotaAt(0, 2)
	if !ok {
		return ptr(m)
	}
	a, m, ok := st.IotaAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewBool(!a.Tolerates(b)))
	return nil
}

func actionNot(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	b, m, ok := st.BoolAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewBool(!b.Value))
	return nil
}

// actionBoolCoerce treats 0 as false, anything else as true.
func actionBoolCoerce(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	n, m, ok := st.NumberAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewBool(n.Value != 0))
	return nil
}

// actionLogarithm is Ln/Log Purification: the deeper operand is the
// value, the shallower is the base (original_source's logarithm:
// iotas.0.log(iotas.1)).
func actionLogarithm(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	x, m, ok := st.NumberAt(0, 2)
	if !ok {
		return ptr(m)
	}
	base, m, ok := st.NumberAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if x.Value <= 0 || base.Value <= 0 || base.Value == 1 {
		return ptr(mishap.MathematicalError())
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewNumber(math.Log(x.Value) / math.Log(base.Value)))
	return nil
}

// actionModulo: the deeper operand is the dividend, the shallower is
// the divisor (original_source's modulo: iotas.0 % iotas.1).
func actionModulo(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	dividend, m, ok := st.NumberAt(0, 2)
	if !ok {
		return ptr(m)
	}
	divisor, m, ok := st.NumberAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if divisor.Value == 0 {
		return ptr(mishap.MathematicalError())
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewNumber(math.Mod(math.Mod(dividend.Value, divisor.Value)+divisor.Value, divisor.Value)))
	return nil
}

func actionNotBit(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	n, m, ok := st.IntegerAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	st.Push(iotamodel.NewNumber(float64(^n)))
	return nil
}

func numUnary(f func(float64) float64) ActionFunc {
	return func(st *State, reg *registry.Registry, value any) *mishap.Mishap {
		n, m, ok := st.NumberAt(0, 1)
		if !ok {
			return ptr(m)
		}
		st.RemoveArgs(1)
		st.Push(iotamodel.NewNumber(f(n.Value)))
		return nil
	}
}

func intBinary(f func(a, b int) int) ActionFunc {
	return func(st *State, reg *registry.Registry, value any) *mishap.Mishap {
		b, m, ok := st.IntegerAt(0, 2)
		if !ok {
			return ptr(m)
		}
		a, m, ok := st.IntegerAt(1, 2)
		if !ok {
			return ptr(m)
		}
		st.RemoveArgs(2)
		st.Push(iotamodel.NewNumber(float64(f(a, b))))
		return nil
	}
}

func boolBinary(f func(a, b bool) bool) ActionFunc {
	return func(st *State, reg *registry.Registry, value any) *mishap.Mishap {
		b, m, ok := st.BoolAt(0, 2)
		if !ok {
			return ptr(m)
		}
		a, m, ok := st.BoolAt(1, 2)
		if !ok {
			return ptr(m)
		}
		st.RemoveArgs(2)
		st.Push(iotamodel.NewBool(f(a.Value, b.Value)))
		return nil
	}
}

// numCompare compares the deeper operand against the shallower one
// (original_source/src/patterns/hex_casting/math.rs's greater/less:
// iotas.0 (deep) compared against iotas.1 (top)).
func numCompare(st *State, f func(a, b float64) bool) *mishap.Mishap {
	b, m, ok := st.NumberAt(0, 2)
	if !ok {
		return ptr(m)
	}
	a, m, ok := st.NumberAt(1, 2)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewBool(f(b.Value, a.Value)))
	return nil
}

// numOrVecBinary backs add/sub: both args Number or both Vector.
func numOrVecBinary(st *State, numF func(a, b float64) float64, vecF func(a, b iotamodel.Vector) iotamodel.Vector) *mishap.Mishap {
	bn, bv, bIsNum, m, ok := st.NumOrVecAt(0, 2)
	if !ok {
		return ptr(m)
	}
	an, av, aIsNum, m, ok := st.NumOrVecAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if aIsNum != bIsNum {
		return ptr(mishap.IncorrectIota(0, "matching operand 1's type", iotamodel.NewNumber(bn.Value)))
	}
	st.RemoveArgs(2)
	if aIsNum {
		st.Push(iotamodel.NewNumber(numF(bn.Value, an.Value)))
	} else {
		st.Push(vecF(bv, av))
	}
	return nil
}
