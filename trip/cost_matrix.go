package trip

import (
	"fmt"

	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// cost matrix
//*******************************************

// Dense n x n matrix of travel costs between locations, row-major.
//
// Unreachable pairs hold structs.INVALID_WEIGHT.
type CostMatrix struct {
	n      int
	values Array[int32]
}

func NewCostMatrix(n int, values Array[int32]) CostMatrix {
	if values.Length() != n*n {
		panic(fmt.Sprintf("cost matrix of size %v needs %v values, got %v", n, n*n, values.Length()))
	}
	return CostMatrix{
		n:      n,
		values: values,
	}
}

// Creates a matrix from nested rows.
func CostMatrixFromRows(rows [][]int32) CostMatrix {
	n := len(rows)
	values := NewArray[int32](n * n)
	for i, row := range rows {
		if len(row) != n {
			panic(fmt.Sprintf("row %v of cost matrix has %v entries, expected %v", i, len(row), n))
		}
		copy(values[i*n:(i+1)*n], row)
	}
	return NewCostMatrix(n, values)
}

func (self CostMatrix) Size() int {
	return self.n
}
func (self CostMatrix) Get(from, to int32) int32 {
	return self.values[int(from)*self.n+int(to)]
}
func (self CostMatrix) Set(from, to int32, weight int32) {
	self.values[int(from)*self.n+int(to)] = weight
}
func (self CostMatrix) Values() Array[int32] {
	return self.values
}
func (self CostMatrix) Copy() CostMatrix {
	return CostMatrix{
		n:      self.n,
		values: self.values.Copy(),
	}
}

// Returns true if any pair is unreachable.
func (self CostMatrix) HasUnreachable() bool {
	for _, w := range self.values {
		if w == structs.INVALID_WEIGHT {
			return true
		}
	}
	return false
}

//*******************************************
// matrix as graph
//*******************************************

// Treats the cost matrix as directed graph, an edge i -> j exists if
// the entry (i, j) is reachable. Self entries are ignored.
type DirectedGraphView struct {
	matrix CostMatrix
}

func NewDirectedGraphView(matrix CostMatrix) *DirectedGraphView {
	return &DirectedGraphView{
		matrix: matrix,
	}
}

func (self *DirectedGraphView) NodeCount() int {
	return self.matrix.Size()
}
func (self *DirectedGraphView) ForSuccessors(node int32, callback func(int32)) {
	for other := int32(0); other < int32(self.matrix.Size()); other++ {
		if other == node {
			continue
		}
		if self.matrix.Get(node, other) != structs.INVALID_WEIGHT {
			callback(other)
		}
	}
}
