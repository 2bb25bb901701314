package trip

import (
	"fmt"

	"github.com/ttpr0/go-trip/algorithm"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// strongly connected components
//*******************************************

// Partition of all locations into strongly connected components.
//
// Component i consists of Nodes[Ranges[i]:Ranges[i+1]].
type Components struct {
	Nodes  Array[int32]
	Ranges Array[int]
}

func (self Components) ComponentCount() int {
	if self.Ranges.Length() == 0 {
		return 0
	}
	return self.Ranges.Length() - 1
}

func (self Components) GetComponent(index int) Array[int32] {
	return self.Nodes[self.Ranges[index]:self.Ranges[index+1]]
}

// Checks that every location 0..n-1 is contained exactly once and the
// ranges tile the nodes.
func (self Components) Validate() error {
	n := self.Nodes.Length()
	if self.Ranges.Length() == 0 {
		return fmt.Errorf("partition has no ranges")
	}
	if self.Ranges[0] != 0 {
		return fmt.Errorf("partition ranges start at %v", self.Ranges[0])
	}
	if self.Ranges[self.Ranges.Length()-1] != n {
		return fmt.Errorf("partition ranges end at %v, expected %v", self.Ranges[self.Ranges.Length()-1], n)
	}
	for i := 1; i < self.Ranges.Length(); i++ {
		if self.Ranges[i] < self.Ranges[i-1] {
			return fmt.Errorf("partition ranges are not sorted at %v", i)
		}
	}
	seen := NewArray[bool](n)
	for _, node := range self.Nodes {
		if node < 0 || int(node) >= n {
			return fmt.Errorf("location %v out of range", node)
		}
		if seen[node] {
			return fmt.Errorf("location %v contained more than once", node)
		}
		seen[node] = true
	}
	return nil
}

// Splits the locations into groups of mutually reachable locations.
//
// If all pairs are reachable a single component in index order is returned
// without running tarjan.
func SplitUnaccessibleLocations(matrix CostMatrix) Components {
	n := matrix.Size()
	if n == 0 {
		return Components{
			Nodes:  NewArray[int32](0),
			Ranges: Array[int]{0},
		}
	}
	if !matrix.HasUnreachable() {
		nodes := NewArray[int32](n)
		for i := 0; i < n; i++ {
			nodes[i] = int32(i)
		}
		return Components{
			Nodes:  nodes,
			Ranges: Array[int]{0, n},
		}
	}

	nodes, ranges := algorithm.TarjanSCC(NewDirectedGraphView(matrix))
	return Components{
		Nodes:  nodes,
		Ranges: ranges,
	}
}
