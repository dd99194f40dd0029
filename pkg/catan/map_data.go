package catan

import (
	"sort"
	"sync"
)

var (
	stdTopoOnce sync.Once
	stdTopoInst *Topology
)

// StandardTopology returns the 19-hex board graph with its 9 ports. The
// topology is built once and cached; subsequent calls return the same
// pointer. Callers must not mutate the returned value.
func StandardTopology() *Topology {
	stdTopoOnce.Do(func() {
		stdTopoInst = buildStandardTopology()
	})
	return stdTopoInst
}

// cornerOffsets are the lattice offsets of a pointy-top hex's corners from
// its centre, clockwise from the top.
var cornerOffsets = [6][2]int{
	{0, -2}, {1, -1}, {1, 1}, {0, 2}, {-1, 1}, {-1, -1},
}

// Port placement: indices into the clockwise coastal edge ring (starting at
// the top-left corner of the top row) and the harbour on each.
var (
	portRingSlots = [PortCount]int{0, 3, 7, 10, 13, 17, 20, 23, 27}
	portRingKinds = [PortCount]PortKind{
		PortGeneric, PortWheat, PortOre, PortGeneric, PortSheep,
		PortGeneric, PortGeneric, PortBrick, PortWood,
	}
)

func buildStandardTopology() *Topology {
	t := &Topology{
		hexIndex:  make(map[HexCoord]HexID, HexCount),
		edgeIndex: make(map[[2]VertexID]EdgeID, EdgeCount),
	}

	// Hexes, row by row from the top.
	for r := -2; r <= 2; r++ {
		for q := max(-2, -r-2); q <= min(2, -r+2); q++ {
			id := HexID(len(t.Hexes))
			c := HexCoord{Q: q, R: r}
			t.Hexes = append(t.Hexes, HexSlot{ID: id, Coord: c})
			t.hexIndex[c] = id
		}
	}
	for i := range t.Hexes {
		h := &t.Hexes[i]
		for _, d := range hexDirections {
			if n := t.HexAt(HexCoord{Q: h.Coord.Q + d.Q, R: h.Coord.R + d.R}); n != NoHex {
				h.Neighbors = append(h.Neighbors, n)
			}
		}
	}

	// Vertices: unique corner points, numbered top to bottom then left to right.
	type point struct{ x, y int }
	corner := func(c HexCoord, i int) point {
		return point{2*c.Q + c.R + cornerOffsets[i][0], 3*c.R + cornerOffsets[i][1]}
	}
	seen := make(map[point]bool, VertexCount)
	var pts []point
	for _, h := range t.Hexes {
		for i := 0; i < 6; i++ {
			p := corner(h.Coord, i)
			if !seen[p] {
				seen[p] = true
				pts = append(pts, p)
			}
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].y != pts[j].y {
			return pts[i].y < pts[j].y
		}
		return pts[i].x < pts[j].x
	})
	vid := make(map[point]VertexID, len(pts))
	for i, p := range pts {
		vid[p] = VertexID(i)
		t.Vertices = append(t.Vertices, VertexNode{ID: VertexID(i), X: p.x, Y: p.y})
	}
	for hi := range t.Hexes {
		h := &t.Hexes[hi]
		for i := 0; i < 6; i++ {
			v := vid[corner(h.Coord, i)]
			h.Vertices[i] = v
			t.Vertices[v].Hexes = append(t.Vertices[v].Hexes, h.ID)
		}
	}

	// Edges: unique hex sides, ordered by endpoint ids.
	var keys [][2]VertexID
	for _, h := range t.Hexes {
		for i := 0; i < 6; i++ {
			a, b := h.Vertices[i], h.Vertices[(i+1)%6]
			if a > b {
				a, b = b, a
			}
			k := [2]VertexID{a, b}
			if _, ok := t.edgeIndex[k]; !ok {
				t.edgeIndex[k] = NoEdge
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for i, k := range keys {
		id := EdgeID(i)
		t.edgeIndex[k] = id
		t.Edges = append(t.Edges, EdgeLink{ID: id, A: k[0], B: k[1]})
	}
	for hi := range t.Hexes {
		h := &t.Hexes[hi]
		for i := 0; i < 6; i++ {
			e, _ := t.EdgeBetween(h.Vertices[i], h.Vertices[(i+1)%6])
			h.Edges[i] = e
			t.Edges[e].Hexes = append(t.Edges[e].Hexes, h.ID)
		}
	}

	// Vertex adjacency, sorted by neighbour id.
	for _, e := range t.Edges {
		addNeighbor(&t.Vertices[e.A], e.B, e.ID)
		addNeighbor(&t.Vertices[e.B], e.A, e.ID)
	}
	for i := range t.Vertices {
		v := &t.Vertices[i]
		sort.Sort(byNeighbor{v})
		v.Coastal = len(v.Hexes) < 3
	}

	// Ports sit on a fixed subset of the coastal ring.
	ring := t.coastalRing()
	for i, slot := range portRingSlots {
		e := t.Edges[ring[slot]]
		p := Port{Kind: portRingKinds[i], Edge: e.ID, Vertices: [2]VertexID{e.A, e.B}}
		t.Ports = append(t.Ports, p)
		t.portAt[e.A] = p.Kind
		t.portAt[e.B] = p.Kind
	}

	return t
}

func addNeighbor(v *VertexNode, n VertexID, e EdgeID) {
	v.Neighbors = append(v.Neighbors, n)
	v.Edges = append(v.Edges, e)
}

// byNeighbor sorts a vertex's Neighbors and Edges together.
type byNeighbor struct{ v *VertexNode }

func (b byNeighbor) Len() int           { return len(b.v.Neighbors) }
func (b byNeighbor) Less(i, j int) bool { return b.v.Neighbors[i] < b.v.Neighbors[j] }
func (b byNeighbor) Swap(i, j int) {
	b.v.Neighbors[i], b.v.Neighbors[j] = b.v.Neighbors[j], b.v.Neighbors[i]
	b.v.Edges[i], b.v.Edges[j] = b.v.Edges[j], b.v.Edges[i]
}

// coastalRing walks the board's outline clockwise from vertex 0 and returns
// the coastal edges in order.
func (t *Topology) coastalRing() []EdgeID {
	coastal := func(v VertexID) []EdgeID {
		var out []EdgeID
		for _, e := range t.Vertices[v].Edges {
			if len(t.Edges[e].Hexes) == 1 {
				out = append(out, e)
			}
		}
		return out
	}

	start := VertexID(0)
	first := coastal(start)
	e := first[0]
	if t.Vertices[t.Edges[first[1]].Other(start)].X > t.Vertices[t.Edges[e].Other(start)].X {
		e = first[1]
	}

	var ring []EdgeID
	cur := start
	for {
		ring = append(ring, e)
		cur = t.Edges[e].Other(cur)
		if cur == start {
			break
		}
		for _, ce := range coastal(cur) {
			if ce != e {
				e = ce
				break
			}
		}
	}
	return ring
}
