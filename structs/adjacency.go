package structs

import (
	"fmt"

	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// adjacency accessor
//*******************************************

// Iterates the adjacency of a single node.
//
// Not thread safe, use one accessor per goroutine.
type IAdjAccessor interface {
	SetBaseNode(node int32, forward bool)
	Next() bool
	GetEdgeID() int32
	GetOtherID() int32
	GetType() byte
}

type AdjEntry struct {
	Other  int32
	EdgeID int32
	Type   byte
}

//*******************************************
// dynamic adjacency list
//*******************************************

type AdjacencyList struct {
	fwd_entries Array[List[AdjEntry]]
	bwd_entries Array[List[AdjEntry]]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	return AdjacencyList{
		fwd_entries: NewArray[List[AdjEntry]](node_count),
		bwd_entries: NewArray[List[AdjEntry]](node_count),
	}
}

func (self *AdjacencyList) NodeCount() int {
	return self.fwd_entries.Length()
}

// Adds an outgoing entry node_a -> node_b to node_a.
func (self *AdjacencyList) AddFWDEntry(node_a, node_b, edge_id int32, typ byte) {
	self.fwd_entries[node_a].Add(AdjEntry{
		Other:  node_b,
		EdgeID: edge_id,
		Type:   typ,
	})
}

// Adds an incoming entry node_a -> node_b to node_b.
func (self *AdjacencyList) AddBWDEntry(node_a, node_b, edge_id int32, typ byte) {
	self.bwd_entries[node_b].Add(AdjEntry{
		Other:  node_a,
		EdgeID: edge_id,
		Type:   typ,
	})
}

// Adds both the outgoing and the incoming entry of node_a -> node_b.
func (self *AdjacencyList) AddEdgeEntries(node_a, node_b, edge_id int32, typ byte) {
	self.AddFWDEntry(node_a, node_b, edge_id, typ)
	self.AddBWDEntry(node_a, node_b, edge_id, typ)
}

func (self *AdjacencyList) GetDegree(node int32, forward bool) int16 {
	if forward {
		return int16(self.fwd_entries[node].Length())
	} else {
		return int16(self.bwd_entries[node].Length())
	}
}

func (self *AdjacencyList) GetAccessor() AdjListAccessor {
	return AdjListAccessor{
		topology: self,
		state:    -1,
	}
}

type AdjListAccessor struct {
	topology *AdjacencyList
	entries  List[AdjEntry]
	state    int
	current  AdjEntry
}

func (self *AdjListAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.entries = self.topology.fwd_entries[node]
	} else {
		self.entries = self.topology.bwd_entries[node]
	}
	self.state = -1
}
func (self *AdjListAccessor) Next() bool {
	self.state += 1
	if self.state >= self.entries.Length() {
		return false
	}
	self.current = self.entries[self.state]
	return true
}
func (self *AdjListAccessor) GetEdgeID() int32 {
	return self.current.EdgeID
}
func (self *AdjListAccessor) GetOtherID() int32 {
	return self.current.Other
}
func (self *AdjListAccessor) GetType() byte {
	return self.current.Type
}

//*******************************************
// static adjacency array
//*******************************************

// Compressed adjacency, entries of node i are stored in [start[i], start[i+1]).
type AdjacencyArray struct {
	fwd_start   Array[int32]
	fwd_entries Array[AdjEntry]
	bwd_start   Array[int32]
	bwd_entries Array[AdjEntry]
}

func AdjacencyListToArray(dyn *AdjacencyList) *AdjacencyArray {
	fwd_start, fwd_entries := _Compress(dyn.fwd_entries)
	bwd_start, bwd_entries := _Compress(dyn.bwd_entries)
	return &AdjacencyArray{
		fwd_start:   fwd_start,
		fwd_entries: fwd_entries,
		bwd_start:   bwd_start,
		bwd_entries: bwd_entries,
	}
}

func _Compress(lists Array[List[AdjEntry]]) (Array[int32], Array[AdjEntry]) {
	start := NewArray[int32](lists.Length() + 1)
	total := 0
	for i, list := range lists {
		start[i] = int32(total)
		total += list.Length()
	}
	start[lists.Length()] = int32(total)
	entries := NewArray[AdjEntry](total)
	for i, list := range lists {
		copy(entries[start[i]:], list)
	}
	return start, entries
}

func (self *AdjacencyArray) NodeCount() int {
	if self.fwd_start.Length() == 0 {
		return 0
	}
	return self.fwd_start.Length() - 1
}

func (self *AdjacencyArray) GetDegree(node int32, forward bool) int16 {
	if forward {
		return int16(self.fwd_start[node+1] - self.fwd_start[node])
	} else {
		return int16(self.bwd_start[node+1] - self.bwd_start[node])
	}
}

func (self *AdjacencyArray) GetAccessor() AdjArrayAccessor {
	return AdjArrayAccessor{
		topology: self,
	}
}

type AdjArrayAccessor struct {
	topology *AdjacencyArray
	entries  Array[AdjEntry]
	state    int32
	end      int32
	current  AdjEntry
}

func (self *AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.entries = self.topology.fwd_entries
		self.state = self.topology.fwd_start[node]
		self.end = self.topology.fwd_start[node+1]
	} else {
		self.entries = self.topology.bwd_entries
		self.state = self.topology.bwd_start[node]
		self.end = self.topology.bwd_start[node+1]
	}
}
func (self *AdjArrayAccessor) Next() bool {
	if self.state >= self.end {
		return false
	}
	self.current = self.entries[self.state]
	self.state += 1
	return true
}
func (self *AdjArrayAccessor) GetEdgeID() int32 {
	return self.current.EdgeID
}
func (self *AdjArrayAccessor) GetOtherID() int32 {
	return self.current.Other
}
func (self *AdjArrayAccessor) GetType() byte {
	return self.current.Type
}

//*******************************************
// load and store
//*******************************************

func StoreAdjacency(adj *AdjacencyArray, filename string) error {
	writer := NewBufferWriter()
	if err := WriteArray(writer, adj.fwd_start); err != nil {
		return err
	}
	if err := WriteArray(writer, adj.fwd_entries); err != nil {
		return err
	}
	if err := WriteArray(writer, adj.bwd_start); err != nil {
		return err
	}
	if err := WriteArray(writer, adj.bwd_entries); err != nil {
		return err
	}
	return WriteBytesToFile(writer.Bytes(), filename)
}

func LoadAdjacency(filename string) (*AdjacencyArray, error) {
	reader, err := NewFileReader(filename)
	if err != nil {
		return nil, err
	}
	fwd_start, err := ReadArray[int32](reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", filename, err)
	}
	fwd_entries, err := ReadArray[AdjEntry](reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", filename, err)
	}
	bwd_start, err := ReadArray[int32](reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", filename, err)
	}
	bwd_entries, err := ReadArray[AdjEntry](reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", filename, err)
	}
	return &AdjacencyArray{
		fwd_start:   fwd_start,
		fwd_entries: fwd_entries,
		bwd_start:   bwd_start,
		bwd_entries: bwd_entries,
	}, nil
}
