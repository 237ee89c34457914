package api

import "fmt"

// Mode is the ruleset a beatmap is played in. Values match the Mode field
// of the beatmap format.
type Mode int

const (
	Osu Mode = iota
	Taiko
	Catch
	Mania
)

func (mode Mode) String() string {
	switch mode {
	case Osu:
		return "osu"
	case Taiko:
		return "taiko"
	case Catch:
		return "catch"
	case Mania:
		return "mania"
	}

	return fmt.Sprintf("Mode(%d)", int(mode))
}

// ParseMode accepts the numeric id or the ruleset name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "0", "osu", "std", "standard":
		return Osu, nil
	case "1", "taiko":
		return Taiko, nil
	case "2", "catch", "ctb", "fruits":
		return Catch, nil
	case "3", "mania":
		return Mania, nil
	}

	return Osu, fmt.Errorf("unknown mode %q", s)
}
