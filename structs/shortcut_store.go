package structs

import (
	"fmt"

	. "github.com/ttpr0/go-trip/util"
)

const (
	CHILD_EDGE     byte = 0
	CHILD_SHORTCUT byte = 2
)

//*******************************************
// shortcut store
//*******************************************

// Stores shortcuts together with the two child edges they replace.
//
// Children are kept in path order (from -> via, via -> to).
type ShortcutStore struct {
	shortcuts List[Shortcut]
	children  List[[2]Tuple[int32, byte]]
}

func NewShortcutStore(cap int) ShortcutStore {
	return ShortcutStore{
		shortcuts: NewList[Shortcut](cap),
		children:  NewList[[2]Tuple[int32, byte]](cap),
	}
}

func (self *ShortcutStore) ShortcutCount() int {
	return self.shortcuts.Length()
}
func (self *ShortcutStore) GetShortcut(shc_id int32) Shortcut {
	return self.shortcuts[shc_id]
}

// Adds a shortcut and returns its id.
func (self *ShortcutStore) AddCHShortcut(shc Shortcut, children [2]Tuple[int32, byte]) int32 {
	id := int32(self.shortcuts.Length())
	self.shortcuts.Add(shc)
	self.children.Add(children)
	return id
}

// Unpacks a shortcut recursively and calls handler for every base edge in path order.
//
// If reversed is set edges are emitted from the last to the first.
func (self *ShortcutStore) GetEdgesFromShortcut(shc_id int32, reversed bool, handler func(int32)) {
	children := self.children[shc_id]
	if reversed {
		children[0], children[1] = children[1], children[0]
	}
	for _, child := range children {
		if child.B == CHILD_SHORTCUT {
			self.GetEdgesFromShortcut(child.A, reversed, handler)
		} else {
			handler(child.A)
		}
	}
}

//*******************************************
// load and store
//*******************************************

func StoreShortcuts(store ShortcutStore, filename string) error {
	writer := NewBufferWriter()
	if err := WriteArray(writer, Array[Shortcut](store.shortcuts)); err != nil {
		return err
	}
	if err := WriteArray(writer, Array[[2]Tuple[int32, byte]](store.children)); err != nil {
		return err
	}
	return WriteBytesToFile(writer.Bytes(), filename)
}

func LoadShortcuts(filename string) (ShortcutStore, error) {
	reader, err := NewFileReader(filename)
	if err != nil {
		return ShortcutStore{}, err
	}
	shortcuts, err := ReadArray[Shortcut](reader)
	if err != nil {
		return ShortcutStore{}, fmt.Errorf("failed to read %v: %w", filename, err)
	}
	children, err := ReadArray[[2]Tuple[int32, byte]](reader)
	if err != nil {
		return ShortcutStore{}, fmt.Errorf("failed to read %v: %w", filename, err)
	}
	if shortcuts.Length() != children.Length() {
		return ShortcutStore{}, fmt.Errorf("corrupt shortcut file %v", filename)
	}
	return ShortcutStore{
		shortcuts: List[Shortcut](shortcuts),
		children:  List[[2]Tuple[int32, byte]](children),
	}, nil
}
