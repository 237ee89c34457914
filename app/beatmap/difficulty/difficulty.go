package difficulty

import (
	"github.com/arisena/gopp/framework/math/mutils"
)

const (
	// HitFadeIn is the base fade-in duration of a hit object in ms
	HitFadeIn = 400.0
)

// Difficulty holds the difficulty settings of a beatmap with every modifier
// transformation applied. The base settings never change after construction;
// SetMods recalculates the derived values, so the original beatmap settings
// stay untouched.
type Difficulty struct {
	hp, cs, od, ar float64

	Mods Modifier

	// CustomSpeed overrides the rate given by DT/HT when positive
	CustomSpeed float64

	// Speed is the final clock rate
	Speed float64

	// PreemptU is the mod-adjusted approach duration in ms, not adjusted by rate
	PreemptU float64

	// Preempt is PreemptU divided by the clock rate
	Preempt float64

	TimeFadeIn float64

	// CircleRadiusU is the mod-adjusted circle radius in osu!pixels
	CircleRadiusU float64

	// Hit windows (±ms), mod-adjusted but not rate-adjusted
	Hit300U, Hit100U, Hit50U float64

	// Hit windows (±ms) adjusted by the clock rate
	Hit300, Hit100, Hit50 float64

	// ARReal and ODReal are the values a player effectively experiences
	// after the clock rate is applied
	ARReal, ODReal float64

	// HPMod is the mod-adjusted health drain, reported but not used by
	// difficulty values
	HPMod float64

	SliderMultiplier float64
	SliderTickRate   float64
}

func NewDifficulty(hp, cs, od, ar float64) *Difficulty {
	// cs stays unclamped, mania encodes key counts up to 18 in it
	diff := &Difficulty{
		hp:               Sanitize(hp),
		cs:               cs,
		od:               Sanitize(od),
		ar:               Sanitize(ar),
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
	}

	diff.calculate()

	return diff
}

// SetMods applies the modifier set. Rate-changing modifiers are accounted
// for before settings scaling, so AR/OD reals use the already rate-scaled
// timing.
func (diff *Difficulty) SetMods(mods Modifier) {
	diff.Mods = mods
	diff.calculate()
}

// SetCustomSpeed sets an explicit rate multiplier, taking precedence over
// the DT/HT rate. Values <= 0 restore the mod-given rate.
func (diff *Difficulty) SetCustomSpeed(speed float64) {
	diff.CustomSpeed = speed
	diff.calculate()
}

func (diff *Difficulty) calculate() {
	hp, cs, od, ar := diff.hp, diff.cs, diff.od, diff.ar

	if diff.Mods.Active(HardRock) {
		ar = min(ar*1.4, 10)
		cs = min(cs*1.3, 10)
		od = min(od*1.4, 10)
		hp = min(hp*1.4, 10)
	}

	if diff.Mods.Active(Easy) {
		ar /= 2
		cs /= 2
		od /= 2
		hp /= 2
	}

	diff.Speed = 1.0
	if diff.Mods.Active(DoubleTime) {
		diff.Speed = 1.5
	} else if diff.Mods.Active(HalfTime) {
		diff.Speed = 0.75
	}

	if diff.CustomSpeed > 0 {
		diff.Speed = diff.CustomSpeed
	}

	diff.HPMod = hp

	diff.CircleRadiusU = 32 * (1 - 0.7*(cs-5)/5)

	diff.PreemptU = DifficultyRate(ar, 1800, 1200, 450)
	diff.Preempt = diff.PreemptU / diff.Speed
	diff.TimeFadeIn = HitFadeIn * min(1, diff.PreemptU/450)

	diff.Hit300U = DifficultyRate(od, 80, 50, 20)
	diff.Hit100U = DifficultyRate(od, 140, 100, 60)
	diff.Hit50U = DifficultyRate(od, 200, 150, 100)

	diff.Hit300 = diff.Hit300U / diff.Speed
	diff.Hit100 = diff.Hit100U / diff.Speed
	diff.Hit50 = diff.Hit50U / diff.Speed

	diff.ARReal = PreemptToAR(diff.Preempt)
	diff.ODReal = (80 - diff.Hit300) / 6
}

func (diff *Difficulty) CheckModActive(mods Modifier) bool {
	return diff.Mods&mods > 0
}

func (diff *Difficulty) GetBaseHP() float64 { return diff.hp }
func (diff *Difficulty) GetBaseCS() float64 { return diff.cs }
func (diff *Difficulty) GetBaseOD() float64 { return diff.od }
func (diff *Difficulty) GetBaseAR() float64 { return diff.ar }

// Clone returns an independent copy with the same base settings and mods.
func (diff *Difficulty) Clone() *Difficulty {
	c := *diff
	return &c
}

// DifficultyRate maps a difficulty value to its duration/window range:
// min at 0, mid at 5, max at 10, linear on both halves.
func DifficultyRate(diff, minV, mid, maxV float64) float64 {
	diff = float64(float32(diff))

	switch {
	case diff > 5:
		return mid + (maxV-mid)*(diff-5)/5
	case diff < 5:
		return mid - (mid-minV)*(5-diff)/5
	}

	return mid
}

// PreemptToAR is the inverse of DifficultyRate(ar, 1800, 1200, 450).
func PreemptToAR(preempt float64) float64 {
	if preempt > 1200 {
		return (1800 - preempt) / 120
	}

	return (1200-preempt)/150 + 5
}

// Sanitize keeps externally supplied settings in the documented 0-10 range.
func Sanitize(value float64) float64 {
	return mutils.Clamp(value, 0, 10)
}
