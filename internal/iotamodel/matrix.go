package iotamodel

import (
	"fmt"
	"strings"
)

// Matrix is a dynamically sized numeric matrix, row-major.
type Matrix struct {
	Rows, Cols int
	Data       []float64 // length Rows*Cols, row-major
}

func NewMatrix(rows, cols int, data []float64) Matrix {
	cp := make([]float64, len(data))
	copy(cp, data)
	return Matrix{Rows: rows, Cols: cols, Data: cp}
}

func (m Matrix) Kind() Kind       { return KindMatrix }
func (m Matrix) TypeName() string { return KindMatrix.String() }

func (m Matrix) At(row, col int) float64 { return m.Data[row*m.Cols+col] }

func (m Matrix) Display() string {
	rows := make([]string, m.Rows)
	for r := 0; r < m.Rows; r++ {
		cells := make([]string, m.Cols)
		for c := 0; c < m.Cols; c++ {
			cells[c] = Number{m.At(r, c)}.Display()
		}
		rows[r] = strings.Join(cells, ", ")
	}
	return fmt.Sprintf("[(%d, %d) | %s]", m.Rows, m.Cols, strings.Join(rows, "; "))
}

func (m Matrix) Tolerates(other Iota) bool {
	o, ok := other.(Matrix)
	if !ok || o.Rows != m.Rows || o.Cols != m.Cols {
		return false
	}
	for i := range m.Data {
		if (Number{m.Data[i]}).Tolerates(Number{o.Data[i]}) == false {
			return false
		}
	}
	return true
}

func (m Matrix) SerializeNBT() string {
	cells := make([]string, len(m.Data))
	for i, v := range m.Data {
		cells[i] = fmt.Sprintf("%gd", v)
	}
	return fmt.Sprintf(
		`{"hexcasting:type": "hexcasting:matrix", "hexcasting:data": {"rows": %d, "cols": %d, "data": [%s]}}`,
		m.Rows, m.Cols, strings.Join(cells, ", "),
	)
}

func (m Matrix) SerializeJSON() any {
	return map[string]any{
		"iotaType": "matrix",
		"value":    map[string]any{"rows": m.Rows, "cols": m.Cols, "data": append([]float64(nil), m.Data...)},
	}
}
