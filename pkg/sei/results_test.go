package sei

import (
	"reflect"
	"testing"
)

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Info
	}{
		{"full", "info depth 3 nodes 120000 nps 40000 score 12 time 3200", Info{Depth: 3, Nodes: 120000, NPS: 40000, Score: 12, Time: 3200}},
		{"partial", "info depth 1 nodes 100 time 50", Info{Depth: 1, Nodes: 100, Time: 50}},
		{"pv", "info depth 2 score -4 pv road 12 ; city 7", Info{Depth: 2, Score: -4, PV: "road 12 ; city 7"}},
		{"empty", "info", Info{}},
		{"unknown keys skipped", "info hashfull 10 score 15", Info{Score: 15}},
		{"dangling key", "info depth", Info{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseInfo(tt.line); got != tt.want {
				t.Errorf("parseInfo(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseEngineOption(t *testing.T) {
	tests := []struct {
		name string
		line string
		want EngineOption
	}{
		{
			"spin",
			"option name Threads type spin default 4 min 1 max 64",
			EngineOption{Name: "Threads", Type: "spin", Default: "4", Min: "1", Max: "64"},
		},
		{
			"string",
			"option name ModelPath type string default models/value.onnx",
			EngineOption{Name: "ModelPath", Type: "string", Default: "models/value.onnx"},
		},
		{
			"combo",
			"option name Style type combo default balanced var balanced var ore var roads",
			EngineOption{Name: "Style", Type: "combo", Default: "balanced", Vars: []string{"balanced", "ore", "roads"}},
		},
		{
			"check without default",
			"option name Ponder type check",
			EngineOption{Name: "Ponder", Type: "check"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseEngineOption(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseEngineOption(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestGoParamsString(t *testing.T) {
	tests := []struct {
		name   string
		params GoParams
		want   string
	}{
		{"bare", GoParams{Decision: DecideAction}, "action"},
		{"args", GoParams{Decision: DecideDiscard, Args: []string{"4"}}, "discard 4"},
		{"movetime", GoParams{Decision: DecideSetup, MoveTime: 500}, "setup movetime 500"},
		{"limits", GoParams{Decision: DecideRobber, MoveTime: 500, Depth: 3, Nodes: 1000}, "robber movetime 500 depth 3 nodes 1000"},
		{"infinite overrides", GoParams{Decision: DecideAction, Infinite: true, MoveTime: 500}, "action infinite"},
		{"trade", GoParams{Decision: DecideTrade, Args: []string{"2", "wood=1", "for", "ore=1"}}, "trade 2 wood=1 for ore=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
