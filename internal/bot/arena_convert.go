package bot

import (
	"strconv"
	"strings"
)

// DefaultDifficulty is used for seats a player config does not name.
const DefaultDifficulty = "easy"

// ParsePlayerConfig parses a seat configuration string like "0=hard,*=easy"
// into one difficulty per seat for n seats. Keys are seat numbers; "*" sets
// the default for seats not listed. Unknown keys are ignored.
func ParsePlayerConfig(s string, n int) []string {
	out := make([]string, n)
	defaultDiff := DefaultDifficulty
	named := make(map[int]string)

	for _, part := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		if key == "*" {
			defaultDiff = val
			continue
		}
		seat, err := strconv.Atoi(key)
		if err != nil || seat < 0 || seat >= n {
			continue
		}
		named[seat] = val
	}

	// Fill in defaults
	for i := range out {
		if d, ok := named[i]; ok {
			out[i] = d
		} else {
			out[i] = defaultDiff
		}
	}
	return out
}

// ParseMatchup sets all n seats to the given difficulty string.
func ParseMatchup(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
