package catan

import (
	"math/rand"
	"slices"
	"testing"
)

func TestStandardTopologyCounts(t *testing.T) {
	topo := StandardTopology()
	if len(topo.Hexes) != HexCount {
		t.Errorf("expected %d hexes, got %d", HexCount, len(topo.Hexes))
	}
	if len(topo.Vertices) != VertexCount {
		t.Errorf("expected %d vertices, got %d", VertexCount, len(topo.Vertices))
	}
	if len(topo.Edges) != EdgeCount {
		t.Errorf("expected %d edges, got %d", EdgeCount, len(topo.Edges))
	}
	if len(topo.Ports) != PortCount {
		t.Errorf("expected %d ports, got %d", PortCount, len(topo.Ports))
	}
}

func TestStandardTopologyCached(t *testing.T) {
	if StandardTopology() != StandardTopology() {
		t.Error("expected the same topology pointer on every call")
	}
}

func TestVertexAdjacencyBidirectional(t *testing.T) {
	topo := StandardTopology()
	for _, v := range topo.Vertices {
		if n := len(v.Neighbors); n < 2 || n > 3 {
			t.Errorf("vertex %d has %d neighbours", v.ID, n)
		}
		if n := len(v.Hexes); n < 1 || n > 3 {
			t.Errorf("vertex %d touches %d hexes", v.ID, n)
		}
		if len(v.Edges) != len(v.Neighbors) {
			t.Fatalf("vertex %d: edges and neighbours differ in length", v.ID)
		}
		for i, n := range v.Neighbors {
			if !slices.Contains(topo.Vertices[n].Neighbors, v.ID) {
				t.Errorf("%d -> %d has no reverse adjacency", v.ID, n)
			}
			e, ok := topo.EdgeBetween(n, v.ID)
			if !ok || e != v.Edges[i] {
				t.Errorf("EdgeBetween(%d, %d) = %d, %v; want %d", n, v.ID, e, ok, v.Edges[i])
			}
		}
	}
}

func TestHexCorners(t *testing.T) {
	topo := StandardTopology()
	for _, h := range topo.Hexes {
		seen := map[VertexID]bool{}
		for i, v := range h.Vertices {
			if seen[v] {
				t.Errorf("hex %d repeats vertex %d", h.ID, v)
			}
			seen[v] = true
			if !slices.Contains(topo.HexesOf(v), h.ID) {
				t.Errorf("vertex %d does not list hex %d", v, h.ID)
			}
			next := h.Vertices[(i+1)%6]
			if !topo.Adjacent(v, next) {
				t.Errorf("hex %d corners %d and %d are not adjacent", h.ID, v, next)
			}
		}
	}

	centre := topo.Hexes[DesertSlot]
	if centre.Coord != (HexCoord{0, 0}) {
		t.Errorf("desert slot is at %+v, want the centre", centre.Coord)
	}
	if len(centre.Neighbors) != 6 {
		t.Errorf("centre hex has %d neighbours, want 6", len(centre.Neighbors))
	}
}

func TestCoastAndPorts(t *testing.T) {
	topo := StandardTopology()
	coastal := 0
	for _, v := range topo.Vertices {
		if v.Coastal {
			coastal++
		}
	}
	if coastal != 30 {
		t.Errorf("expected 30 coastal vertices, got %d", coastal)
	}
	if ring := topo.coastalRing(); len(ring) != 30 {
		t.Errorf("expected a 30-edge coastal ring, got %d", len(ring))
	}

	kinds := map[PortKind]int{}
	portVerts := map[VertexID]bool{}
	for _, p := range topo.Ports {
		kinds[p.Kind]++
		for _, v := range p.Vertices {
			if !topo.Vertices[v].Coastal {
				t.Errorf("port vertex %d is inland", v)
			}
			if portVerts[v] {
				t.Errorf("vertex %d is on two ports", v)
			}
			portVerts[v] = true
			if topo.PortAt(v) != p.Kind {
				t.Errorf("PortAt(%d) = %v, want %v", v, topo.PortAt(v), p.Kind)
			}
		}
	}
	if kinds[PortGeneric] != 4 {
		t.Errorf("expected 4 generic ports, got %d", kinds[PortGeneric])
	}
	for _, r := range AllResources() {
		if kinds[PortFor(r)] != 1 {
			t.Errorf("expected one 2:1 %s port, got %d", r, kinds[PortFor(r)])
		}
	}
}

func TestNewBoardDeal(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(3)))

	var numbers []int
	robbers := 0
	terrain := map[Resource]int{}
	for i, tile := range b.Tiles {
		terrain[tile.Resource]++
		if tile.Robber {
			robbers++
			if HexID(i) != DesertSlot {
				t.Errorf("robber starts on hex %d, want the desert", i)
			}
		}
		if tile.Resource != Desert {
			numbers = append(numbers, tile.Number)
		}
	}
	if robbers != 1 {
		t.Errorf("expected exactly one robber, got %d", robbers)
	}
	if terrain[Desert] != 1 || b.Tiles[DesertSlot].Resource != Desert {
		t.Errorf("expected one desert in slot %d", DesertSlot)
	}

	want := slices.Clone(StandardNumbers[:])
	slices.Sort(want)
	slices.Sort(numbers)
	if !slices.Equal(numbers, want) {
		t.Errorf("numbers = %v, want %v", numbers, want)
	}
}

func TestNewBoardFromTilesRejectsBadLayouts(t *testing.T) {
	tiles := fixedTiles()
	tiles[0] = Tile{Resource: Desert}
	if _, err := NewBoardFromTiles(tiles); err == nil {
		t.Error("expected an error for two deserts")
	}

	tiles = fixedTiles()
	tiles[0].Number = 7
	if _, err := NewBoardFromTiles(tiles); err == nil {
		t.Error("expected an error for a 7 token")
	}

	if _, err := NewBoardFromTiles(fixedTiles()[:5]); err == nil {
		t.Error("expected an error for a short layout")
	}
}

func TestBoardCloneIndependent(t *testing.T) {
	b, err := NewBoardFromTiles(fixedTiles())
	if err != nil {
		t.Fatal(err)
	}
	c := b.Clone()
	b.Roads[0] = 1
	b.Buildings[0] = Building{Kind: City, Owner: 2}
	b.Tiles[0].Robber = true

	if c.Roads[0] != NoPlayer || c.Buildings[0].Kind != NoBuilding || c.Tiles[0].Robber {
		t.Error("clone should be independent of the original")
	}
	if c.Topo != b.Topo {
		t.Error("clone should share the topology")
	}
}

func TestHexesForRoll(t *testing.T) {
	b, _ := NewBoardFromTiles(fixedTiles())
	for roll := 2; roll <= 12; roll++ {
		want := 0
		for _, n := range StandardNumbers {
			if n == roll {
				want++
			}
		}
		if got := len(b.HexesForRoll(roll)); got != want {
			t.Errorf("roll %d: %d hexes, want %d", roll, got, want)
		}
	}
}
