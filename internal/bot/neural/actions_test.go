package neural

import (
	"testing"

	"github.com/freeeve/settlers/pkg/catan"
)

func countTypes(actions []catan.Action) map[ActionType]int {
	n := make(map[ActionType]int)
	for _, a := range actions {
		n[TypeOf(a)]++
	}
	return n
}

func TestValidActionsEmptyHand(t *testing.T) {
	gs := setupGame(t, 11)
	pl := gs.Player(0)
	gs.Bank.DepositAll(pl.Resources)
	pl.Resources = catan.Resources{}

	if got := ValidActions(gs, 0); len(got) != 0 {
		t.Errorf("expected no actions without cards, got %v", got)
	}
	if got := ValidActions(gs, 1); got != nil {
		t.Errorf("expected nothing off turn, got %v", got)
	}
}

func TestValidActionsAllApply(t *testing.T) {
	gs := setupGame(t, 12)
	pl := gs.Player(0)
	gs.Bank.DepositAll(pl.Resources)
	pl.Resources = catan.Resources{}
	grant(t, gs, 0, catan.Resources{3, 3, 3, 3, 3})
	pl.DevCards[catan.Knight] = 1
	pl.DevCards[catan.RoadBuilder] = 1
	pl.DevCards[catan.YearOfPlenty] = 1
	pl.DevCards[catan.Monopoly] = 1
	grant(t, gs, 1, catan.Resources{catan.Wood: 1})

	actions := ValidActions(gs, 0)
	types := countTypes(actions)
	for _, want := range []ActionType{BuildCity, BuildRoad, DrawDevCard, PlayDevCard} {
		if types[want] == 0 {
			t.Errorf("expected at least one %s action", want)
		}
	}

	for _, a := range actions {
		sim := gs.Clone()
		if err := sim.Apply(0, a); err != nil {
			t.Errorf("%v: %v", a, err)
		}
	}
}

func TestValidActionsBankTrades(t *testing.T) {
	gs := setupGame(t, 13)
	pl := gs.Player(0)
	gs.Bank.DepositAll(pl.Resources)
	pl.Resources = catan.Resources{}
	grant(t, gs, 0, catan.Resources{catan.Sheep: 4})

	actions := ValidActions(gs, 0)
	trades := 0
	for _, a := range actions {
		if a.Kind == catan.ActTradeBank {
			trades++
			if a.Give != catan.Sheep || a.Get == catan.Sheep {
				t.Errorf("unexpected trade %v", a)
			}
		}
	}
	if trades != catan.NumResources-1 {
		t.Errorf("expected %d trades, got %d", catan.NumResources-1, trades)
	}
}

func TestRoadBuilderPairsAreDistinct(t *testing.T) {
	gs := setupGame(t, 14)
	gs.Player(0).DevCards[catan.RoadBuilder] = 1

	seen := make(map[[2]catan.EdgeID]bool)
	for _, a := range roadBuilderPairs(gs, 0) {
		k := [2]catan.EdgeID{min(a.Edge, a.Edge2), max(a.Edge, a.Edge2)}
		if seen[k] {
			t.Errorf("pair %v listed twice", k)
		}
		seen[k] = true
		if err := gs.Clone().PlayRoadBuilder(0, a.Edge, a.Edge2); err != nil {
			t.Errorf("%v: %v", a, err)
		}
	}
	if len(seen) == 0 {
		t.Fatal("expected road builder pairs")
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		a    catan.Action
		want ActionType
	}{
		{catan.BuildSettlement(3), BuildSettlement},
		{catan.PlayMonopoly(catan.Ore), PlayDevCard},
		{catan.TradeBank(catan.Wood, catan.Ore), TradeBank},
		{catan.EndTurn(), -1},
	}
	for _, c := range cases {
		if got := TypeOf(c.a); got != c.want {
			t.Errorf("TypeOf(%v) = %v, want %v", c.a, got, c.want)
		}
	}
}
