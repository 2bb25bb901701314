package manytomany

import (
	"sync"

	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// query heap
//*******************************************

type _HeapEntry struct {
	key      int32
	inserted bool
	settled  bool
}

// Dijkstra heap over graph nodes.
//
// Every node is logically contained at most once. Decreasing a key pushes a
// new queue item, outdated items are dropped in DeleteMin.
type QueryHeap struct {
	entries Flags[_HeapEntry]
	queue   PriorityQueue[int32, int32]
}

func NewQueryHeap(node_count int) *QueryHeap {
	return &QueryHeap{
		entries: NewFlags[_HeapEntry](int32(node_count), _HeapEntry{key: structs.INVALID_WEIGHT}),
		queue:   NewPriorityQueue[int32, int32](100),
	}
}

func (self *QueryHeap) Clear() {
	self.entries.Reset()
	self.queue.Clear()
}

// Inserts node or lowers its key. Settled nodes are not changed.
//
// Returns true if the key was updated.
func (self *QueryHeap) Insert(node int32, key int32) bool {
	if key == structs.INVALID_WEIGHT {
		return false
	}
	entry := self.entries.Get(node)
	if entry.settled {
		return false
	}
	if entry.inserted && entry.key <= key {
		return false
	}
	entry.key = key
	entry.inserted = true
	self.queue.Enqueue(node, key)
	return true
}

func (self *QueryHeap) WasInserted(node int32) bool {
	if !self.entries.IsSet(node) {
		return false
	}
	return self.entries.Get(node).inserted
}

func (self *QueryHeap) WasSettled(node int32) bool {
	if !self.entries.IsSet(node) {
		return false
	}
	return self.entries.Get(node).settled
}

// Returns the current key of node or INVALID_WEIGHT.
func (self *QueryHeap) GetKey(node int32) int32 {
	if !self.entries.IsSet(node) {
		return structs.INVALID_WEIGHT
	}
	return self.entries.Get(node).key
}

// Removes and settles the node with the smallest key.
func (self *QueryHeap) DeleteMin() (int32, int32, bool) {
	for {
		node, key, ok := self.queue.Peek()
		if !ok {
			return -1, structs.INVALID_WEIGHT, false
		}
		self.queue.Dequeue()
		entry := self.entries.Get(node)
		if entry.settled || entry.key != key {
			continue
		}
		entry.settled = true
		return node, key, true
	}
}

//*******************************************
// heap pool
//*******************************************

// Pool of heaps sized for one graph.
type _HeapPool struct {
	pool sync.Pool
}

func _NewHeapPool(node_count int) *_HeapPool {
	return &_HeapPool{
		pool: sync.Pool{
			New: func() any {
				return NewQueryHeap(node_count)
			},
		},
	}
}

func (self *_HeapPool) Get() *QueryHeap {
	heap := self.pool.Get().(*QueryHeap)
	heap.Clear()
	return heap
}
func (self *_HeapPool) Put(heap *QueryHeap) {
	self.pool.Put(heap)
}
