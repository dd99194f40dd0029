package catan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePosition(t *testing.T) {
	gs := newTestGame(t, 3)
	put(gs, 1, 3, Settlement)
	lay(gs, 1, 2)
	give(t, gs, 0, Resources{Wood: 1, Brick: 2})
	gs.Players[0].DevCards[Knight] = 1
	gs.Players[0].NewDevCards = []DevCard{Monopoly}
	gs.Players[0].VictoryCards = 1
	gs.DevCards[Knight] -= 1
	gs.DevCards[Monopoly] -= 1
	gs.DevCards[VictoryPoint] -= 1

	sections := strings.Split(EncodePosition(gs, 0), "/")
	require.Len(t, sections, 7)

	assert.Equal(t, "0m0", sections[0])

	tiles := strings.Split(sections[1], ",")
	require.Len(t, tiles, HexCount)
	assert.Equal(t, "d0*", tiles[DesertSlot])
	assert.Equal(t, 1, strings.Count(sections[1], "*"))

	assert.Equal(t, "s3.1", sections[2])
	assert.Equal(t, "2.1", sections[3])
	assert.Equal(t, "0.3.2.0.0,1.0.0.0.1,0.0.0.0.0", sections[4])
	assert.Equal(t, "18,17,19,19,19.22", sections[5])
	assert.Equal(t, "0:1,2,0,0,0:1,0,0,0,0:1:1", sections[6])
}

func TestEncodePositionHidesOpponentHands(t *testing.T) {
	gs := newTestGame(t, 4)
	give(t, gs, 2, Resources{Ore: 3})
	gs.RobberPending = true
	gs.Current = 2

	pos := EncodePosition(gs, 1)
	sections := strings.Split(pos, "/")
	assert.Equal(t, "0m2p", sections[0])
	assert.Equal(t, "-", sections[2])
	assert.Equal(t, "-", sections[3])
	assert.Equal(t, "0.0.0.0.0,0.0.0.0.0,0.3.0.0.0,0.0.0.0.0", sections[4])
	assert.Equal(t, "1:0,0,0,0,0:0,0,0,0,0:0:0", sections[6])

	assert.True(t, strings.HasSuffix(EncodePosition(gs, NoPlayer), "/-"))
}

func TestEncodePositionFlags(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Players[2].LongestRoadFlag = true
	gs.Players[2].LargestArmyFlag = true
	gs.Players[2].KnightsPlayed = 3
	gs.Phase = PhaseGameOver

	sections := strings.Split(EncodePosition(gs, 2), "/")
	assert.Equal(t, "0x0", sections[0])
	assert.Equal(t, "0.0.0.0.0,0.0.0.0.0,4.0.0.3.0LA", sections[4])
}
