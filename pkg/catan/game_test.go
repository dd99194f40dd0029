package catan

import (
	"math/rand"
	"testing"
)

// randomMoves lists a handful of legal actions for the current player.
func randomMoves(gs *GameState, rng *rand.Rand) []Action {
	p := gs.Current
	pl := &gs.Players[p]
	var out []Action
	if pl.Resources.Covers(CityCost) {
		for _, v := range gs.PotentialCities(p) {
			out = append(out, BuildCity(v))
		}
	}
	if pl.Resources.Covers(SettlementCost) {
		for _, v := range gs.PotentialSettlements(p) {
			out = append(out, BuildSettlement(v))
		}
	}
	if pl.Resources.Covers(RoadCost) && pl.RoadsLeft > 0 {
		for _, e := range gs.PotentialRoads(p) {
			out = append(out, BuildRoad(e))
		}
	}
	if pl.Resources.Covers(DevCardCost) && gs.DevCards.Remaining() > 0 {
		out = append(out, DrawDevCard())
	}
	if gs.CanPlay(p, Knight) == nil {
		spots := gs.RobberSpots()
		out = append(out, PlayKnight(spots[rng.Intn(len(spots))], RandomVictim))
	}
	if gs.CanPlay(p, YearOfPlenty) == nil {
		out = append(out, PlayYearOfPlenty(Resource(rng.Intn(NumResources)), Resource(rng.Intn(NumResources))))
	}
	if gs.CanPlay(p, Monopoly) == nil {
		out = append(out, PlayMonopoly(Resource(rng.Intn(NumResources))))
	}
	for _, r := range AllResources() {
		if pl.Resources[r] >= gs.TradeRatio(p, r) {
			out = append(out, TradeBank(r, Resource((int(r)+1+rng.Intn(NumResources-1))%NumResources)))
		}
	}
	return out
}

func checkInvariants(t *testing.T, gs *GameState) {
	t.Helper()
	for r, n := range gs.ResourceTotals() {
		if n != BankStart {
			t.Fatalf("turn %d: %s total = %d", gs.Turn, Resource(r), n)
		}
	}
	if n := robberCount(gs); n != 1 {
		t.Fatalf("turn %d: %d robbers", gs.Turn, n)
	}
	roads, armies := 0, 0
	for i := range gs.Players {
		pl := &gs.Players[i]
		if pl.LongestRoadFlag {
			roads++
		}
		if pl.LargestArmyFlag {
			armies++
		}
		if pl.RoadsLeft+len(pl.Roads) != MaxRoads ||
			pl.SettlementsLeft+len(pl.Settlements) != MaxSettlements ||
			pl.CitiesLeft+len(pl.Cities) != MaxCities {
			t.Fatalf("turn %d: %s piece counts are off", gs.Turn, pl.Name)
		}
		for _, c := range pl.Resources {
			if c < 0 {
				t.Fatalf("turn %d: %s holds %v", gs.Turn, pl.Name, pl.Resources)
			}
		}
	}
	if roads > 1 || armies > 1 {
		t.Fatalf("turn %d: %d longest road and %d largest army holders", gs.Turn, roads, armies)
	}
}

func playRandomGame(t *testing.T, seed int64, maxTurns int) *GameState {
	rng := rand.New(rand.NewSource(seed))
	names := []string{"a", "b", "c", "d"}[:3+rng.Intn(2)]
	gs, err := NewGame(Options{Names: names, Rand: rng})
	if err != nil {
		t.Fatal(err)
	}

	start := StartingPlayer(rng, len(names))
	for _, p := range gs.SetupOrder(start) {
		spots := gs.SetupSettlements(p)
		v := spots[rng.Intn(len(spots))]
		roads := gs.SetupRoads(p, v)
		if _, err := gs.PlaceSetup(p, v, roads[rng.Intn(len(roads))]); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	gs.FinishSetup(start)
	checkInvariants(t, gs)

	for gs.Turn < maxTurns && !gs.IsGameOver() {
		total, _, err := gs.Roll()
		if err != nil {
			t.Fatal(err)
		}
		if total == 7 {
			for i := range gs.Players {
				gs.AutoDiscard(PlayerID(i))
			}
			spots := gs.RobberSpots()
			if _, err := gs.MoveRobber(gs.Current, spots[rng.Intn(len(spots))], RandomVictim); err != nil {
				t.Fatal(err)
			}
		}
		checkInvariants(t, gs)

		for i := 0; i < 6 && !gs.IsGameOver(); i++ {
			moves := randomMoves(gs, rng)
			if len(moves) == 0 {
				break
			}
			a := moves[rng.Intn(len(moves))]
			// Monopoly with no holders and year of plenty picks may be rejected.
			_ = gs.Apply(gs.Current, a)
			checkInvariants(t, gs)
		}
		if gs.IsGameOver() {
			break
		}
		if err := gs.EndTurn(); err != nil {
			t.Fatal(err)
		}
	}
	return gs
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		playRandomGame(t, seed, 400)
	}
}

func FuzzRandomGame(f *testing.F) {
	f.Add(int64(42))
	f.Add(int64(7))
	f.Fuzz(func(t *testing.T, seed int64) {
		gs := playRandomGame(t, seed, 200)
		if gs.IsGameOver() {
			w := gs.Winner()
			if gs.Players[w].VictoryPoints() < gs.VictoryTarget {
				t.Fatalf("winner %d has %d points", w, gs.Players[w].VictoryPoints())
			}
		}
	})
}
