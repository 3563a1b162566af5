package interp

import (
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/mishap"
	"github.com/hexcompiler/hexagon/internal/registry"
)

func registerMatrixActions(d *Dispatch) {
	d.Register("matrix_new", actionMatrixNew)
	d.Register("matrix_get", actionMatrixGet)
	d.Register("matrix_set", actionMatrixSet)
	d.Register("matrix_transpose", actionMatrixTranspose)
	d.Register("matrix_add", actionMatrixAdd)
	d.Register("matrix_mul", actionMatrixMul)
}

// actionMatrixNew is Matrix Exaltation: rows, cols -> a zero matrix of
// that size.
func actionMatrixNew(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	cols, m, ok := st.IntegerAt(0, 2)
	if !ok {
		return ptr(m)
	}
	rows, m, ok := st.IntegerAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if rows <= 0 || cols <= 0 {
		return ptr(mishap.InvalidValue("positive dimensions", "non-positive"))
	}
	st.RemoveArgs(2)
	st.Push(iotamodel.NewMatrix(rows, cols, make([]float64, rows*cols)))
	return nil
}

func actionMatrixGet(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	col, m, ok := st.IntegerAt(0, 3)
	if !ok {
		return ptr(m)
	}
	row, m, ok := st.IntegerAt(1, 3)
	if !ok {
		return ptr(m)
	}
	mat, m, ok := st.MatrixAt(2, 3)
	if !ok {
		return ptr(m)
	}
	if row < 0 || row >= mat.Rows || col < 0 || col >= mat.Cols {
		return ptr(mishap.NoIotaAtIndex(row*mat.Cols + col))
	}
	st.RemoveArgs(3)
	st.Push(iotamodel.NewNumber(mat.At(row, col)))
	return nil
}

func actionMatrixSet(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	v, m, ok := st.NumberAt(0, 4)
	if !ok {
		return ptr(m)
	}
	col, m, ok := st.IntegerAt(1, 4)
	if !ok {
		return ptr(m)
	}
	row, m, ok := st.IntegerAt(2, 4)
	if !ok {
		return ptr(m)
	}
	mat, m, ok := st.MatrixAt(3, 4)
	if !ok {
		return ptr(m)
	}
	if row < 0 || row >= mat.Rows || col < 0 || col >= mat.Cols {
		return ptr(mishap.NoIotaAtIndex(row*mat.Cols + col))
	}
	st.RemoveArgs(4)
	data := append([]float64(nil), mat.Data...)
	data[row*mat.Cols+col] = v.Value
	st.Push(iotamodel.NewMatrix(mat.Rows, mat.Cols, data))
	return nil
}

func actionMatrixTranspose(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	mat, m, ok := st.MatrixAt(0, 1)
	if !ok {
		return ptr(m)
	}
	st.RemoveArgs(1)
	data := make([]float64, len(mat.Data))
	for r := 0; r < mat.Rows; r++ {
		for c := 0; c < mat.Cols; c++ {
			data[c*mat.Rows+r] = mat.At(r, c)
		}
	}
	st.Push(iotamodel.NewMatrix(mat.Cols, mat.Rows, data))
	return nil
}

func actionMatrixAdd(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	b, m, ok := st.MatrixAt(0, 2)
	if !ok {
		return ptr(m)
	}
	a, m, ok := st.MatrixAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return ptr(mishap.MatrixWrongSize(b, mishap.MatrixSize{Count: a.Rows}, mishap.MatrixSize{Count: a.Cols}))
	}
	st.RemoveArgs(2)
	data := make([]float64, len(a.Data))
	for i := range data {
		data[i] = a.Data[i] + b.Data[i]
	}
	st.Push(iotamodel.NewMatrix(a.Rows, a.Cols, data))
	return nil
}

func actionMatrixMul(st *State, reg *registry.Registry, value any) *mishap.Mishap {
	b, m, ok := st.MatrixAt(0, 2)
	if !ok {
		return ptr(m)
	}
	a, m, ok := st.MatrixAt(1, 2)
	if !ok {
		return ptr(m)
	}
	if a.Cols != b.Rows {
		return ptr(mishap.MatrixWrongSize(b, mishap.MatrixSize{Count: a.Cols}, mishap.MatrixSize{Any: true}))
	}
	st.RemoveArgs(2)
	data := make([]float64, a.Rows*b.Cols)
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			var sum float64
			for k := 0; k < a.Cols; k++ {
				sum += a.At(r, k) * b.At(k, c)
			}
			data[r*b.Cols+c] = sum
		}
	}
	st.Push(iotamodel.NewMatrix(a.Rows, b.Cols, data))
	return nil
}
