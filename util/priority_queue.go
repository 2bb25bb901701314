package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type _PQEntry[T any, P constraints.Ordered] struct {
	item T
	prio P
}

// Binary min-heap ordered by priority.
//
// Items are not deduplicated, decrease-key is done by enqueueing the item again
// and skipping stale entries on dequeue.
type PriorityQueue[T any, P constraints.Ordered] struct {
	entries []_PQEntry[T, P]
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		entries: make([]_PQEntry[T, P], 0, cap),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, prio P) {
	self.entries = append(self.entries, _PQEntry[T, P]{item, prio})
	self._SiftUp(len(self.entries) - 1)
}

// Removes and returns the item with the smallest priority.
func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	n := len(self.entries)
	if n == 0 {
		var t T
		return t, false
	}
	item := self.entries[0].item
	self.entries[0] = self.entries[n-1]
	self.entries = self.entries[:n-1]
	if len(self.entries) > 0 {
		self._SiftDown(0)
	}
	return item, true
}

// Returns the smallest priority without removing it.
func (self *PriorityQueue[T, P]) Peek() (T, P, bool) {
	if len(self.entries) == 0 {
		var t T
		var p P
		return t, p, false
	}
	e := self.entries[0]
	return e.item, e.prio, true
}

func (self *PriorityQueue[T, P]) Len() int {
	return len(self.entries)
}

func (self *PriorityQueue[T, P]) Clear() {
	self.entries = self.entries[:0]
}

func (self *PriorityQueue[T, P]) _SiftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if self.entries[i].prio >= self.entries[parent].prio {
			break
		}
		self.entries[i], self.entries[parent] = self.entries[parent], self.entries[i]
		i = parent
	}
}

func (self *PriorityQueue[T, P]) _SiftDown(i int) {
	n := len(self.entries)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && self.entries[left].prio < self.entries[smallest].prio {
			smallest = left
		}
		if right < n && self.entries[right].prio < self.entries[smallest].prio {
			smallest = right
		}
		if smallest == i {
			return
		}
		self.entries[i], self.entries[smallest] = self.entries[smallest], self.entries[i]
		i = smallest
	}
}
