package comps

import (
	"github.com/ttpr0/go-trip/structs"
	. "github.com/ttpr0/go-trip/util"
)

//*******************************************
// ch-data
//*******************************************

func NewCH(shortcuts structs.ShortcutStore, topology structs.AdjacencyArray, node_levels Array[int16]) *CH {
	return &CH{
		shortcuts:   shortcuts,
		topology:    topology,
		node_levels: node_levels,
	}
}

type CH struct {
	shortcuts   structs.ShortcutStore
	topology    structs.AdjacencyArray
	node_levels Array[int16]
}

func (self *CH) GetNodeLevel(node int32) int16 {
	return self.node_levels[node]
}
func (self *CH) ShortcutCount() int {
	return self.shortcuts.ShortcutCount()
}
func (self *CH) GetShortcut(shc_id int32) structs.Shortcut {
	return self.shortcuts.GetShortcut(shc_id)
}
func (self *CH) GetEdgesFromShortcut(edge int32, reverse bool, callback func(int32)) {
	self.shortcuts.GetEdgesFromShortcut(edge, reverse, callback)
}
func (self *CH) GetShortcutAccessor() structs.IAdjAccessor {
	acc := self.topology.GetAccessor()
	return &acc
}

func (self *CH) _New() *CH {
	return &CH{}
}
func (self *CH) _Load(path string) error {
	ch_topology, err := structs.LoadAdjacency(path + "-ch_graph")
	if err != nil {
		return err
	}
	ch_shortcuts, err := structs.LoadShortcuts(path + "-shortcut")
	if err != nil {
		return err
	}
	node_levels, err := ReadArrayFromFile[int16](path + "-level")
	if err != nil {
		return err
	}

	*self = CH{
		shortcuts:   ch_shortcuts,
		topology:    *ch_topology,
		node_levels: node_levels,
	}
	return nil
}
func (self *CH) _Store(path string) error {
	if err := structs.StoreShortcuts(self.shortcuts, path+"-shortcut"); err != nil {
		return err
	}
	if err := structs.StoreAdjacency(&self.topology, path+"-ch_graph"); err != nil {
		return err
	}
	return WriteArrayToFile(self.node_levels, path+"-level")
}
