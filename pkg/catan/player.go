package catan

// PlayerID is a seat index, 0-based in turn order of creation.
type PlayerID int

// NoPlayer marks an unowned vertex or edge.
const NoPlayer PlayerID = -1

// Seat limits.
const (
	MinPlayers = 3
	MaxPlayers = 4
)

// Piece supply per player.
const (
	MaxRoads       = 15
	MaxSettlements = 5
	MaxCities      = 4
)

// Player is one seat's build graph, hand, and bonus state.
type Player struct {
	ID   PlayerID
	Name string

	Resources Resources

	Settlements []VertexID
	Cities      []VertexID
	Roads       []EdgeID
	Ports       []PortKind

	RoadsLeft       int
	SettlementsLeft int
	CitiesLeft      int

	// DevCards holds playable cards; NewDevCards were drawn this turn.
	DevCards              [NumDevCardKinds]int
	NewDevCards           []DevCard
	DevCardPlayedThisTurn bool
	KnightsPlayed         int
	VictoryCards          int

	MaxRoadLength   int
	LongestRoadFlag bool
	LargestArmyFlag bool
}

func newPlayer(id PlayerID, name string) Player {
	return Player{
		ID:              id,
		Name:            name,
		RoadsLeft:       MaxRoads,
		SettlementsLeft: MaxSettlements,
		CitiesLeft:      MaxCities,
	}
}

// clone returns a deep copy.
func (p Player) clone() Player {
	p.Settlements = append([]VertexID(nil), p.Settlements...)
	p.Cities = append([]VertexID(nil), p.Cities...)
	p.Roads = append([]EdgeID(nil), p.Roads...)
	p.Ports = append([]PortKind(nil), p.Ports...)
	p.NewDevCards = append([]DevCard(nil), p.NewDevCards...)
	return p
}

// VisibleVictoryPoints counts everything other players can see: buildings
// and the two bonuses.
func (p *Player) VisibleVictoryPoints() int {
	vp := len(p.Settlements) + 2*len(p.Cities)
	if p.LongestRoadFlag {
		vp += 2
	}
	if p.LargestArmyFlag {
		vp += 2
	}
	return vp
}

// VictoryPoints is the full score including hidden victory point cards.
func (p *Player) VictoryPoints() int {
	return p.VisibleVictoryPoints() + p.VictoryCards
}

// DevCardCount counts held development cards, playable or not, excluding
// victory point cards already scored.
func (p *Player) DevCardCount() int {
	n := len(p.NewDevCards)
	for _, c := range p.DevCards {
		n += c
	}
	return n
}

// HasPort reports whether p owns a building on a port of kind k.
func (p *Player) HasPort(k PortKind) bool {
	for _, pk := range p.Ports {
		if pk == k {
			return true
		}
	}
	return false
}

// Buildings returns settlement and city vertices.
func (p *Player) Buildings() []VertexID {
	out := make([]VertexID, 0, len(p.Settlements)+len(p.Cities))
	out = append(out, p.Settlements...)
	return append(out, p.Cities...)
}

func removeVertex(s []VertexID, v VertexID) []VertexID {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
