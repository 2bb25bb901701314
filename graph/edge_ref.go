package graph

//*******************************************
// edgeref struct
//*******************************************

const (
	EDGE_TYPE        byte = 0
	CH_SHORTCUT_TYPE byte = 100
)

type EdgeRef struct {
	EdgeID  int32
	Type    byte
	OtherID int32
}

func (self EdgeRef) IsEdge() bool {
	return self.Type < 100
}
func (self EdgeRef) IsShortcut() bool {
	return self.Type >= 100
}
func (self EdgeRef) IsCHShortcut() bool {
	return self.Type == CH_SHORTCUT_TYPE
}

func CreateEdgeRef(edge int32) EdgeRef {
	return EdgeRef{
		EdgeID:  edge,
		Type:    EDGE_TYPE,
		OtherID: -1,
	}
}
func CreateCHShortcutRef(edge int32) EdgeRef {
	return EdgeRef{
		EdgeID:  edge,
		Type:    CH_SHORTCUT_TYPE,
		OtherID: -1,
	}
}
