package difficulty

import (
	"errors"
	"fmt"
	"strings"
)

type Modifier int64

const (
	NoFail Modifier = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore // Only set along with DoubleTime. i.e: NC only gives 576
	Flashlight
	SpunOut
	ScoreV2
	Classic // Selects legacy scoring compatibility, needs a positive legacy total score at performance time
	Lazer
	None Modifier = 0
)

var (
	ErrUnsupportedModifier  = errors.New("unsupported modifier")
	ErrIncompatibleModifier = errors.New("incompatible modifiers")
)

var modAcronyms = []struct {
	mod     Modifier
	acronym string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{TouchDevice, "TD"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{SuddenDeath, "SD"},
	{DoubleTime, "DT"},
	{Relax, "RX"},
	{HalfTime, "HT"},
	{Nightcore, "NC"},
	{Flashlight, "FL"},
	{SpunOut, "SO"},
	{ScoreV2, "V2"},
	{Classic, "CL"},
	{Lazer, "LZ"},
}

// Mutually exclusive modifier families. At most one member of each may be
// active in a mod set.
var modFamilies = [][]Modifier{
	{Easy, HardRock},
	{HalfTime, DoubleTime, Nightcore},
	{NoFail, SuddenDeath, Relax},
	{Classic, Lazer},
}

// Active reports whether any modifier of the given mask is enabled.
func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod > 0
}

func (mods Modifier) String() (s string) {
	for _, entry := range modAcronyms {
		if mods&entry.mod > 0 && entry.mod != DoubleTime || (entry.mod == DoubleTime && mods&Nightcore == 0 && mods&DoubleTime > 0) {
			s += entry.acronym
		}
	}

	return
}

// ParseAcronyms normalizes a list of acronym strings (case-insensitive)
// to one Modifier set. Unknown acronyms and conflicting families are
// rejected before any transformation takes place.
func ParseAcronyms(acronyms []string) (Modifier, error) {
	var mods Modifier

	for _, acronym := range acronyms {
		acronym = strings.ToUpper(strings.TrimSpace(acronym))
		if acronym == "" || acronym == "NM" {
			continue
		}

		found := false

		for _, entry := range modAcronyms {
			if entry.acronym == acronym {
				mods |= entry.mod
				found = true

				break
			}
		}

		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnsupportedModifier, acronym)
		}
	}

	// NC is a DT variant, the rate change comes from the DT bit
	if mods.Active(Nightcore) {
		mods |= DoubleTime
	}

	if err := validateFamilies(mods); err != nil {
		return 0, err
	}

	return mods, nil
}

func validateFamilies(mods Modifier) error {
	for _, family := range modFamilies {
		active := 0

		for _, mod := range family {
			// NC implies DT, don't count the implied bit twice
			if mod == DoubleTime && mods.Active(Nightcore) {
				continue
			}

			if mods.Active(mod) {
				active++
			}
		}

		if active > 1 {
			names := make([]string, 0, len(family))
			for _, mod := range family {
				if mods.Active(mod) {
					names = append(names, mod.String())
				}
			}

			return fmt.Errorf("%w: %s", ErrIncompatibleModifier, strings.Join(names, "+"))
		}
	}

	return nil
}

// GetDiffMaskedMods masks the mod set to modifiers that affect difficulty
// values.
func GetDiffMaskedMods(mods Modifier) Modifier {
	return mods & (Easy | HardRock | HalfTime | DoubleTime | Nightcore | Hidden | Flashlight | TouchDevice | Relax | SpunOut)
}
