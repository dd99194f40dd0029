package catan

import (
	"strconv"
	"strings"
)

// resourceChars are the single-letter resource codes used in position
// strings; 'd' is the desert.
var resourceChars = [...]byte{'w', 'b', 's', 'h', 'o', 'd'}

var phaseChars = map[Phase]byte{
	PhaseSetup:    's',
	PhaseRoll:     'r',
	PhaseMain:     'm',
	PhaseGameOver: 'x',
}

// EncodePosition serializes the game as seen by seat. Opponent hands and
// development cards appear only as totals; seat's own hand and cards are
// listed in full. Sections are separated by '/':
//
//	<turn><phase><current>[p] / tiles / buildings / roads / seats / bank / self
//
// The trailing 'p' on the first section means a robber move is pending.
// Tiles are "<resource><number>", '*' marking the robber. Buildings are
// "<s|c><vertex>.<owner>" and roads "<edge>.<owner>", '-' when empty. Each
// seat is "<visible vp>.<cards>.<dev cards>.<knights>.<road length>" plus 'L'
// and 'A' for the longest road and largest army. The bank is five resource
// counts and the undrawn development cards after a '.'. Self is
// "<seat>:<hand>:<playable dev cards>:<new dev cards>:<hidden vp>".
func EncodePosition(gs *GameState, seat PlayerID) string {
	var b strings.Builder
	b.Grow(512)

	b.WriteString(strconv.Itoa(gs.Turn))
	b.WriteByte(phaseChars[gs.Phase])
	b.WriteString(strconv.Itoa(int(gs.Current)))
	if gs.RobberPending {
		b.WriteByte('p')
	}
	b.WriteByte('/')
	encodeTiles(&b, gs.Board)
	b.WriteByte('/')
	encodeBuildings(&b, gs.Board)
	b.WriteByte('/')
	encodeRoads(&b, gs.Board)
	b.WriteByte('/')
	encodeSeats(&b, gs)
	b.WriteByte('/')
	writeCounts(&b, gs.Bank.Resources[:])
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(gs.DevCards.Remaining()))
	b.WriteByte('/')
	encodeSelf(&b, gs, seat)

	return b.String()
}

func encodeTiles(b *strings.Builder, board *Board) {
	for i, t := range board.Tiles {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(resourceChars[t.Resource])
		b.WriteString(strconv.Itoa(t.Number))
		if t.Robber {
			b.WriteByte('*')
		}
	}
}

func encodeBuildings(b *strings.Builder, board *Board) {
	first := true
	for v, bld := range board.Buildings {
		if bld.Kind == NoBuilding {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		if bld.Kind == City {
			b.WriteByte('c')
		} else {
			b.WriteByte('s')
		}
		b.WriteString(strconv.Itoa(v))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(int(bld.Owner)))
	}
	if first {
		b.WriteByte('-')
	}
}

func encodeRoads(b *strings.Builder, board *Board) {
	first := true
	for e, owner := range board.Roads {
		if owner == NoPlayer {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.Itoa(e))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(int(owner)))
	}
	if first {
		b.WriteByte('-')
	}
}

func encodeSeats(b *strings.Builder, gs *GameState) {
	for i := range gs.Players {
		pl := &gs.Players[i]
		if i > 0 {
			b.WriteByte(',')
		}
		writeCounts(b, []int{pl.VisibleVictoryPoints(), pl.Resources.Total(), pl.DevCardCount(), pl.KnightsPlayed, pl.MaxRoadLength}, '.')
		if pl.LongestRoadFlag {
			b.WriteByte('L')
		}
		if pl.LargestArmyFlag {
			b.WriteByte('A')
		}
	}
}

func encodeSelf(b *strings.Builder, gs *GameState, seat PlayerID) {
	if !gs.validPlayer(seat) {
		b.WriteByte('-')
		return
	}
	pl := &gs.Players[seat]
	b.WriteString(strconv.Itoa(int(seat)))
	b.WriteByte(':')
	writeCounts(b, pl.Resources[:])
	b.WriteByte(':')
	writeCounts(b, pl.DevCards[:])
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(pl.NewDevCards)))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(pl.VictoryCards))
}

// writeCounts writes ns joined by sep, ',' when sep is omitted.
func writeCounts(b *strings.Builder, ns []int, sep ...byte) {
	s := byte(',')
	if len(sep) > 0 {
		s = sep[0]
	}
	for i, n := range ns {
		if i > 0 {
			b.WriteByte(s)
		}
		b.WriteString(strconv.Itoa(n))
	}
}
