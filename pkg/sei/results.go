package sei

import (
	"fmt"
	"strconv"
	"strings"
)

// Decisions an engine can be asked for. The answer format of each is the
// same text a person types at the game prompt:
//
//	setup    "<vertex> <edge>"
//	action   a turn command, e.g. "road 12", "knight 4 2" or "end"
//	discard  a hand such as "wood=2,ore=1"
//	robber   "<hex> [seat]"
//	trade    "yes" or "no"
const (
	DecideSetup   = "setup"
	DecideAction  = "action"
	DecideDiscard = "discard"
	DecideRobber  = "robber"
	DecideTrade   = "trade"
)

// Info is a single "info" line emitted by the engine while searching.
type Info struct {
	Depth int
	Nodes int
	NPS   int
	Time  int
	Score int
	PV    string
}

// SearchResults holds everything a Go command produced: the info lines and
// the final bestaction answer.
type SearchResults struct {
	BestAction string
	Infos      []Info
}

// EngineID holds the engine identification received during handshake.
type EngineID struct {
	Name            string
	Author          string
	ProtocolVersion int
}

// EngineOption describes a configuration option advertised by the engine.
type EngineOption struct {
	Name    string
	Type    string
	Default string
	Min     string
	Max     string
	Vars    []string
}

// GoParams is one decision request plus optional search limits.
type GoParams struct {
	Decision string   // one of the Decide constants
	Args     []string // decision arguments, e.g. the discard count
	MoveTime int      // milliseconds; 0 means engine default
	Depth    int      // 0 means unlimited
	Nodes    int      // 0 means unlimited
	Infinite bool     // search until stop is sent
}

// String formats p as the arguments of a "go" command.
func (p GoParams) String() string {
	parts := []string{p.Decision}
	parts = append(parts, p.Args...)
	if p.Infinite {
		return strings.Join(append(parts, "infinite"), " ")
	}
	if p.MoveTime > 0 {
		parts = append(parts, fmt.Sprintf("movetime %d", p.MoveTime))
	}
	if p.Depth > 0 {
		parts = append(parts, fmt.Sprintf("depth %d", p.Depth))
	}
	if p.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %d", p.Nodes))
	}
	return strings.Join(parts, " ")
}

// parseInfo parses an "info" line. Missing fields stay zero.
func parseInfo(line string) Info {
	var info Info
	tokens := strings.Fields(line)
	for i := 1; i < len(tokens); i++ {
		var dst *int
		switch tokens[i] {
		case "depth":
			dst = &info.Depth
		case "nodes":
			dst = &info.Nodes
		case "nps":
			dst = &info.NPS
		case "time":
			dst = &info.Time
		case "score":
			dst = &info.Score
		case "pv":
			// PV is the rest of the line.
			info.PV = strings.Join(tokens[i+1:], " ")
			return info
		default:
			continue
		}
		if i+1 < len(tokens) {
			*dst, _ = strconv.Atoi(tokens[i+1])
			i++
		}
	}
	return info
}

// parseEngineOption parses a handshake "option" line:
// option name <id> type <type> [default <x>] [min <x>] [max <x>] [var <x> ...]
func parseEngineOption(line string) EngineOption {
	var opt EngineOption
	tokens := strings.Fields(line)
	for i := 1; i+1 < len(tokens); i++ {
		val := tokens[i+1]
		switch tokens[i] {
		case "name":
			opt.Name = val
		case "type":
			opt.Type = val
		case "default":
			opt.Default = val
		case "min":
			opt.Min = val
		case "max":
			opt.Max = val
		case "var":
			opt.Vars = append(opt.Vars, val)
		default:
			continue
		}
		i++
	}
	return opt
}
