package manytomany

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

type IManyToMany interface {
	CreateSolver() ISolver
}

// Not thread safe, create one solver per goroutine.
type ISolver interface {
	// Computes the weights between all sources and targets.
	//
	// sources and targets index into phantoms. The result holds
	// len(sources)*len(targets) weights row-major by source,
	// unreachable pairs are set to INVALID_WEIGHT.
	CalcTable(phantoms Array[structs.PhantomNode], sources Array[int], targets Array[int]) Array[int32]
}

// Returns a table of size rows*cols filled with INVALID_WEIGHT.
func _NewTable(rows, cols int) Array[int32] {
	table := NewArray[int32](rows * cols)
	for i := 0; i < table.Length(); i++ {
		table[i] = structs.INVALID_WEIGHT
	}
	return table
}
