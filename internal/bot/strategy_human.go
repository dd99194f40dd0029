package bot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/freeeve/settlers/pkg/catan"
)

const humanHelp = `commands:
  end                      end the turn
  road <edge>              build a road
  settle <vertex>          build a settlement
  city <vertex>            upgrade a settlement
  dev                      buy a development card
  knight <hex> [seat]      play a knight
  roads <edge> [edge]      play road builder
  plenty <res> <res>       play year of plenty
  monopoly <res>           play monopoly
  trade <give> <get>       trade with the bank
  offer <seat> <cards> for <cards>
                           propose a trade, cards like wood=2,ore=1
  hand                     show your hand
`

// HumanStrategy reads decisions as text commands. When input runs out it
// hands every remaining decision to the heuristic bot.
type HumanStrategy struct {
	in       *bufio.Scanner
	out      io.Writer
	eof      bool
	fallback HeuristicStrategy
}

// NewHumanStrategy returns a strategy that prompts on w and reads from r.
func NewHumanStrategy(r io.Reader, w io.Writer) *HumanStrategy {
	return &HumanStrategy{in: bufio.NewScanner(r), out: w}
}

func (*HumanStrategy) Name() string { return "human" }

// readLine prompts and returns the next non-empty line, or false at EOF.
func (s *HumanStrategy) readLine(prompt string) (string, bool) {
	if s.eof {
		return "", false
	}
	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			s.eof = true
			fmt.Fprintln(s.out)
			return "", false
		}
		if line := strings.TrimSpace(s.in.Text()); line != "" {
			return line, true
		}
	}
}

func (s *HumanStrategy) showHand(gs *catan.GameState, p catan.PlayerID) {
	pl := gs.Player(p)
	fmt.Fprintf(s.out, "%s: %d points, hand %s, dev cards %v, roads %d settlements %d cities %d left\n",
		pl.Name, pl.VictoryPoints(), pl.Resources, pl.DevCards,
		pl.RoadsLeft, pl.SettlementsLeft, pl.CitiesLeft)
}

func (s *HumanStrategy) ChooseSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID) {
	for {
		line, ok := s.readLine(fmt.Sprintf("%s, place a settlement and road (<vertex> <edge>): ", gs.Player(p).Name))
		if !ok {
			return s.fallback.ChooseSetup(gs, p)
		}
		nums, err := parseInts(strings.Fields(line), 2)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		v, e := catan.VertexID(nums[0]), catan.EdgeID(nums[1])
		if err := gs.CheckSettlement(p, v, true); err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if err := gs.CheckSetupRoad(p, v, e); err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		return v, e
	}
}

func (s *HumanStrategy) ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action {
	for {
		line, ok := s.readLine(fmt.Sprintf("[%s] > ", gs.Player(p).Name))
		if !ok {
			return s.fallback.ProposeAction(gs, p)
		}
		switch strings.ToLower(line) {
		case "help", "?":
			fmt.Fprint(s.out, humanHelp)
			continue
		case "hand":
			s.showHand(gs, p)
			continue
		}
		a, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		return a
	}
}

func (s *HumanStrategy) ChooseDiscard(gs *catan.GameState, p catan.PlayerID, n int) catan.Resources {
	for {
		line, ok := s.readLine(fmt.Sprintf("discard %d cards from %s: ", n, gs.Player(p).Resources))
		if !ok {
			return s.fallback.ChooseDiscard(gs, p, n)
		}
		rs, err := ParseResources(line)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if rs.Total() != n || !gs.Player(p).Resources.Covers(rs) {
			fmt.Fprintf(s.out, "pick exactly %d cards you hold\n", n)
			continue
		}
		return rs
	}
}

func (s *HumanStrategy) ChooseRobberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID) {
	for {
		line, ok := s.readLine("move the robber (<hex> [seat]): ")
		if !ok {
			return s.fallback.ChooseRobberTarget(gs, p)
		}
		h, victim, err := parseRobber(strings.Fields(line))
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if err := gs.CheckRobberMove(p, h, victim); err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		return h, victim
	}
}

func (s *HumanStrategy) AcceptTrade(gs *catan.GameState, p, from catan.PlayerID, offer, request catan.Resources) bool {
	line, ok := s.readLine(fmt.Sprintf("%s offers %s for your %s. accept? [y/n] ",
		gs.Player(from).Name, offer, request))
	if !ok {
		return s.fallback.AcceptTrade(gs, p, from, offer, request)
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes"
}

// ActionRejected prints why the last command failed.
func (s *HumanStrategy) ActionRejected(_ *catan.GameState, _ catan.PlayerID, a catan.Action, err error) {
	fmt.Fprintf(s.out, "%s rejected: %v\n", a, err)
}

// ParseCommand converts one command line into an action.
func ParseCommand(line string) (catan.Action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return catan.Action{}, errors.New("empty command")
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "end", "done", "pass":
		return catan.EndTurn(), nil
	case "road":
		n, err := parseInts(args, 1)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.BuildRoad(catan.EdgeID(n[0])), nil
	case "settle", "settlement":
		n, err := parseInts(args, 1)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.BuildSettlement(catan.VertexID(n[0])), nil
	case "city":
		n, err := parseInts(args, 1)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.BuildCity(catan.VertexID(n[0])), nil
	case "dev", "buy":
		return catan.DrawDevCard(), nil
	case "knight":
		h, victim, err := parseRobber(args)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.PlayKnight(h, victim), nil
	case "roads":
		if len(args) == 1 {
			n, err := parseInts(args, 1)
			if err != nil {
				return catan.Action{}, err
			}
			return catan.PlayRoadBuilder(catan.EdgeID(n[0]), catan.NoEdge), nil
		}
		n, err := parseInts(args, 2)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.PlayRoadBuilder(catan.EdgeID(n[0]), catan.EdgeID(n[1])), nil
	case "plenty":
		rs, err := parseResourceNames(args, 2)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.PlayYearOfPlenty(rs[0], rs[1]), nil
	case "monopoly":
		rs, err := parseResourceNames(args, 1)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.PlayMonopoly(rs[0]), nil
	case "trade":
		rs, err := parseResourceNames(args, 2)
		if err != nil {
			return catan.Action{}, err
		}
		return catan.TradeBank(rs[0], rs[1]), nil
	case "offer":
		return parseOffer(args)
	}
	return catan.Action{}, fmt.Errorf("unknown command %q (try help)", cmd)
}

// parseOffer parses "<seat> <cards> for <cards>".
func parseOffer(args []string) (catan.Action, error) {
	if len(args) < 4 {
		return catan.Action{}, errors.New("usage: offer <seat> <cards> for <cards>")
	}
	seat, err := strconv.Atoi(args[0])
	if err != nil {
		return catan.Action{}, fmt.Errorf("bad seat %q", args[0])
	}
	rest := strings.Join(args[1:], " ")
	give, get, ok := strings.Cut(rest, " for ")
	if !ok {
		return catan.Action{}, errors.New("usage: offer <seat> <cards> for <cards>")
	}
	offer, err := ParseResources(give)
	if err != nil {
		return catan.Action{}, err
	}
	request, err := ParseResources(get)
	if err != nil {
		return catan.Action{}, err
	}
	return catan.TradePlayer(catan.PlayerID(seat), offer, request), nil
}

// ParseResources parses a card list such as "wood=2 ore=1" or "wood,brick".
// A name without a count means one card.
func ParseResources(s string) (catan.Resources, error) {
	var rs catan.Resources
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return rs, errors.New("no cards given")
	}
	for _, f := range fields {
		name, count, hasCount := strings.Cut(f, "=")
		r, err := catan.ParseResource(name)
		if err != nil {
			return catan.Resources{}, err
		}
		n := 1
		if hasCount {
			n, err = strconv.Atoi(count)
			if err != nil || n < 0 {
				return catan.Resources{}, fmt.Errorf("bad count %q for %s", count, r)
			}
		}
		rs[r] += n
	}
	return rs, nil
}

func parseRobber(args []string) (catan.HexID, catan.PlayerID, error) {
	switch len(args) {
	case 1:
		n, err := parseInts(args, 1)
		if err != nil {
			return catan.NoHex, catan.NoPlayer, err
		}
		return catan.HexID(n[0]), catan.RandomVictim, nil
	case 2:
		n, err := parseInts(args, 2)
		if err != nil {
			return catan.NoHex, catan.NoPlayer, err
		}
		return catan.HexID(n[0]), catan.PlayerID(n[1]), nil
	}
	return catan.NoHex, catan.NoPlayer, errors.New("expected <hex> [seat]")
}

func parseInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func parseResourceNames(args []string, n int) ([]catan.Resource, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d resources, got %d", n, len(args))
	}
	out := make([]catan.Resource, n)
	for i, a := range args {
		r, err := catan.ParseResource(a)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
