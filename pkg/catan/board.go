package catan

import "fmt"

// Rand is the randomness the engine consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

func shuffle[T any](rng Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// DesertSlot is the hex that always holds the desert.
const DesertSlot HexID = 9

// StandardNumbers are the 18 production tokens.
var StandardNumbers = [HexCount - 1]int{5, 2, 6, 3, 8, 10, 9, 12, 11, 4, 8, 10, 9, 4, 5, 6, 3, 11}

// StandardTerrain is the resource mix of the 18 producing hexes.
var StandardTerrain = [HexCount - 1]Resource{
	Wood, Wood, Wood, Wood,
	Brick, Brick, Brick,
	Sheep, Sheep, Sheep, Sheep,
	Wheat, Wheat, Wheat, Wheat,
	Ore, Ore, Ore,
}

// Tile is the per-game state of a hex.
type Tile struct {
	Resource Resource
	Number   int // 0 for the desert
	Robber   bool
}

// BuildingKind is the occupancy of a vertex.
type BuildingKind int8

const (
	NoBuilding BuildingKind = iota
	Settlement
	City
)

func (k BuildingKind) String() string {
	switch k {
	case Settlement:
		return "settlement"
	case City:
		return "city"
	default:
		return "empty"
	}
}

// Building is what stands on a vertex.
type Building struct {
	Kind  BuildingKind
	Owner PlayerID
}

// Board is the mutable per-game layer over the shared Topology: tile
// assignment, robber, and occupancy of vertices and edges.
type Board struct {
	Topo      *Topology
	Tiles     []Tile
	Buildings []Building // indexed by VertexID
	Roads     []PlayerID // indexed by EdgeID; NoPlayer when unbuilt
}

// NewBoard deals the standard terrain and numbers onto the 18 producing hexes
// using rng. The desert takes the centre slot and starts with the robber.
func NewBoard(rng Rand) *Board {
	terrain := StandardTerrain
	numbers := StandardNumbers
	shuffle(rng, terrain[:])
	shuffle(rng, numbers[:])

	tiles := make([]Tile, HexCount)
	k := 0
	for i := range tiles {
		if HexID(i) == DesertSlot {
			tiles[i] = Tile{Resource: Desert, Robber: true}
			continue
		}
		tiles[i] = Tile{Resource: terrain[k], Number: numbers[k]}
		k++
	}
	return newBoard(tiles)
}

// NewBoardFromTiles builds a board with a fixed layout. Exactly one tile must
// be the desert (number 0); the robber is placed on it.
func NewBoardFromTiles(tiles []Tile) (*Board, error) {
	if len(tiles) != HexCount {
		return nil, fmt.Errorf("need %d tiles, got %d", HexCount, len(tiles))
	}
	deserts := 0
	out := make([]Tile, HexCount)
	for i, t := range tiles {
		switch {
		case t.Resource == Desert:
			deserts++
			t.Number = 0
			t.Robber = true
		case !t.Resource.Valid():
			return nil, fmt.Errorf("tile %d: invalid resource %v", i, t.Resource)
		case t.Number < 2 || t.Number > 12 || t.Number == 7:
			return nil, fmt.Errorf("tile %d: invalid number %d", i, t.Number)
		default:
			t.Robber = false
		}
		out[i] = t
	}
	if deserts != 1 {
		return nil, fmt.Errorf("need exactly one desert, got %d", deserts)
	}
	return newBoard(out), nil
}

func newBoard(tiles []Tile) *Board {
	b := &Board{
		Topo:      StandardTopology(),
		Tiles:     tiles,
		Buildings: make([]Building, VertexCount),
		Roads:     make([]PlayerID, EdgeCount),
	}
	for i := range b.Buildings {
		b.Buildings[i].Owner = NoPlayer
	}
	for i := range b.Roads {
		b.Roads[i] = NoPlayer
	}
	return b
}

// Clone returns a deep copy sharing only the immutable Topology.
func (b *Board) Clone() *Board {
	c := &Board{
		Topo:      b.Topo,
		Tiles:     make([]Tile, len(b.Tiles)),
		Buildings: make([]Building, len(b.Buildings)),
		Roads:     make([]PlayerID, len(b.Roads)),
	}
	copy(c.Tiles, b.Tiles)
	copy(c.Buildings, b.Buildings)
	copy(c.Roads, b.Roads)
	return c
}

// RobberHex returns the hex carrying the robber.
func (b *Board) RobberHex() HexID {
	for i, t := range b.Tiles {
		if t.Robber {
			return HexID(i)
		}
	}
	return NoHex
}

// HexesForRoll returns the hexes whose number equals roll, including a
// robbed one.
func (b *Board) HexesForRoll(roll int) []HexID {
	var out []HexID
	for i, t := range b.Tiles {
		if t.Number == roll && t.Resource != Desert {
			out = append(out, HexID(i))
		}
	}
	return out
}

// Occupied reports whether a settlement or city stands on v.
func (b *Board) Occupied(v VertexID) bool {
	return b.Buildings[v].Kind != NoBuilding
}

// OwnerAt returns the owner of the building on v, or NoPlayer.
func (b *Board) OwnerAt(v VertexID) PlayerID {
	if b.Buildings[v].Kind == NoBuilding {
		return NoPlayer
	}
	return b.Buildings[v].Owner
}

// RoadOwner returns the owner of the road on e, or NoPlayer.
func (b *Board) RoadOwner(e EdgeID) PlayerID {
	return b.Roads[e]
}

// OwnersAround returns the distinct owners of buildings on h's corners, in
// ascending id order.
func (b *Board) OwnersAround(h HexID) []PlayerID {
	var seen [MaxPlayers]bool
	for _, v := range b.Topo.Hexes[h].Vertices {
		if o := b.OwnerAt(v); o != NoPlayer {
			seen[o] = true
		}
	}
	var out []PlayerID
	for p, ok := range seen {
		if ok {
			out = append(out, PlayerID(p))
		}
	}
	return out
}
