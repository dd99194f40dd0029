package catan

// Counts for the standard board.
const (
	HexCount    = 19
	VertexCount = 54
	EdgeCount   = 72
	PortCount   = 9
)

// HexID, VertexID and EdgeID are dense indices into the Topology slices.
type (
	HexID    int
	VertexID int
	EdgeID   int
)

// Sentinel ids for "no such element".
const (
	NoHex    HexID    = -1
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
)

// HexCoord is an axial hex coordinate. The third cube coordinate is -Q-R.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// hexDirections lists the six axial neighbour offsets.
var hexDirections = [6]HexCoord{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// HexSlot is one fixed cell of the board.
type HexSlot struct {
	ID        HexID
	Coord     HexCoord
	Vertices  [6]VertexID // clockwise from the top corner
	Edges     [6]EdgeID   // Edges[i] joins Vertices[i] and Vertices[(i+1)%6]
	Neighbors []HexID
}

// VertexNode is a settlement/city placement point.
// Neighbors[i] is reached through Edges[i].
type VertexNode struct {
	ID        VertexID
	X, Y      int // lattice position: X in half hex widths, Y in quarter hex heights
	Hexes     []HexID
	Neighbors []VertexID
	Edges     []EdgeID
	Coastal   bool
}

// EdgeLink is a road placement point between two vertices, with A < B.
type EdgeLink struct {
	ID    EdgeID
	A, B  VertexID
	Hexes []HexID
}

// Other returns the endpoint of e that is not v.
func (e EdgeLink) Other(v VertexID) VertexID {
	if e.A == v {
		return e.B
	}
	return e.A
}

// PortKind identifies a harbour's trade terms.
type PortKind int

const (
	PortNone PortKind = iota
	PortGeneric
	PortWood
	PortBrick
	PortSheep
	PortWheat
	PortOre
)

// PortFor returns the 2:1 port kind for a resource.
func PortFor(r Resource) PortKind {
	return PortWood + PortKind(r)
}

// Ratio returns how many cards the port takes for one card from the bank.
func (k PortKind) Ratio() int {
	switch k {
	case PortNone:
		return 4
	case PortGeneric:
		return 3
	default:
		return 2
	}
}

// Resource returns the resource a 2:1 port accepts. ok is false for generic
// and missing ports.
func (k PortKind) Resource() (r Resource, ok bool) {
	if k < PortWood || k > PortOre {
		return 0, false
	}
	return Resource(k - PortWood), true
}

func (k PortKind) String() string {
	switch k {
	case PortNone:
		return "none"
	case PortGeneric:
		return "3:1"
	default:
		r, _ := k.Resource()
		return "2:1 " + r.String()
	}
}

// Port is a harbour on a coastal edge; both endpoints grant it.
type Port struct {
	Kind     PortKind
	Edge     EdgeID
	Vertices [2]VertexID
}

// Topology holds the fixed hex/vertex/edge graph and ports. It never changes
// after construction and is shared by every game.
type Topology struct {
	Hexes    []HexSlot
	Vertices []VertexNode
	Edges    []EdgeLink
	Ports    []Port

	hexIndex  map[HexCoord]HexID
	edgeIndex map[[2]VertexID]EdgeID
	portAt    [VertexCount]PortKind
}

// HexAt returns the hex at an axial coordinate, or NoHex.
func (t *Topology) HexAt(c HexCoord) HexID {
	id, ok := t.hexIndex[c]
	if !ok {
		return NoHex
	}
	return id
}

// EdgeBetween returns the edge joining a and b in either order.
func (t *Topology) EdgeBetween(a, b VertexID) (EdgeID, bool) {
	if a > b {
		a, b = b, a
	}
	id, ok := t.edgeIndex[[2]VertexID{a, b}]
	return id, ok
}

// Adjacent reports whether two vertices are one edge apart.
func (t *Topology) Adjacent(a, b VertexID) bool {
	_, ok := t.EdgeBetween(a, b)
	return ok
}

// HexesOf returns the hexes touching a vertex.
func (t *Topology) HexesOf(v VertexID) []HexID {
	return t.Vertices[v].Hexes
}

// VerticesOf returns the six corners of a hex, clockwise from the top.
func (t *Topology) VerticesOf(h HexID) []VertexID {
	vs := t.Hexes[h].Vertices
	return vs[:]
}

// EdgesOf returns the edges incident to a vertex.
func (t *Topology) EdgesOf(v VertexID) []EdgeID {
	return t.Vertices[v].Edges
}

// PortAt returns the port kind attached to v, or PortNone.
func (t *Topology) PortAt(v VertexID) PortKind {
	return t.portAt[v]
}

// ValidVertex reports whether v is in range.
func (t *Topology) ValidVertex(v VertexID) bool {
	return v >= 0 && int(v) < len(t.Vertices)
}

// ValidEdge reports whether e is in range.
func (t *Topology) ValidEdge(e EdgeID) bool {
	return e >= 0 && int(e) < len(t.Edges)
}

// ValidHex reports whether h is in range.
func (t *Topology) ValidHex(h HexID) bool {
	return h >= 0 && int(h) < len(t.Hexes)
}
