package pp241007_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007"
)

func testAttributes() api.Attributes {
	return api.Attributes{
		Total:                     5.2,
		Aim:                       2.6,
		Speed:                     2.2,
		Flashlight:                1.8,
		SliderFactor:              0.98,
		SpeedNoteCount:            220,
		AimDifficultStrainCount:   60,
		SpeedDifficultStrainCount: 45,
		ObjectCount:               600,
		Circles:                   450,
		Sliders:                   130,
		Spinners:                  20,
		MaxCombo:                  850,
	}
}

func fullComboScore(attribs api.Attributes) api.ScoreStatistics {
	return api.ScoreStatistics{
		Great:         attribs.ObjectCount,
		MaxCombo:      attribs.MaxCombo,
		SliderTailHit: -1,
	}
}

func calculate(attribs api.Attributes, score api.ScoreStatistics, mods difficulty.Modifier) api.PPv2Results {
	diff := difficulty.NewDifficulty(5, 4, 9, 9.3)
	diff.SetMods(mods)

	return pp241007.NewPPCalculator().Calculate(attribs, score, diff)
}

func TestPerformance(t *testing.T) {
	convey.Convey("Given the attributes of a typical map", t, func() {
		attribs := testAttributes()

		convey.Convey("An SS is worth more than any flawed score", func() {
			ss := calculate(attribs, fullComboScore(attribs), difficulty.None)

			convey.So(ss.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(ss.Aim, convey.ShouldBeGreaterThan, 0)
			convey.So(ss.Speed, convey.ShouldBeGreaterThan, 0)
			convey.So(ss.Acc, convey.ShouldBeGreaterThan, 0)

			convey.Convey("misses cost pp", func() {
				score := fullComboScore(attribs)
				score.Great -= 2
				score.Miss = 2
				score.MaxCombo = 400

				missed := calculate(attribs, score, difficulty.None)

				convey.So(missed.Total, convey.ShouldBeLessThan, ss.Total)
				convey.So(missed.EffectiveMissCount, convey.ShouldBeGreaterThanOrEqualTo, 2)
			})

			convey.Convey("a dropped combo turns 100s into estimated breaks", func() {
				score := fullComboScore(attribs)
				score.Great -= 3
				score.Ok = 3

				fc := calculate(attribs, score, difficulty.None)

				score.MaxCombo = 500
				dropped := calculate(attribs, score, difficulty.None)

				convey.So(dropped.Total, convey.ShouldBeLessThan, fc.Total)
				convey.So(dropped.EffectiveMissCount, convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("100s cost pp", func() {
				score := fullComboScore(attribs)
				score.Great -= 20
				score.Ok = 20

				worse := calculate(attribs, score, difficulty.None)

				convey.So(worse.Total, convey.ShouldBeLessThan, ss.Total)
			})
		})

		convey.Convey("Flashlight only scores with the FL modifier", func() {
			nomod := calculate(attribs, fullComboScore(attribs), difficulty.None)
			fl := calculate(attribs, fullComboScore(attribs), difficulty.Flashlight)

			convey.So(nomod.Flashlight, convey.ShouldEqual, 0)
			convey.So(fl.Flashlight, convey.ShouldBeGreaterThan, 0)
			convey.So(fl.Total, convey.ShouldBeGreaterThan, nomod.Total)
		})

		convey.Convey("Hidden pays a bonus", func() {
			nomod := calculate(attribs, fullComboScore(attribs), difficulty.None)
			hd := calculate(attribs, fullComboScore(attribs), difficulty.Hidden)

			convey.So(hd.Total, convey.ShouldBeGreaterThan, nomod.Total)
		})

		convey.Convey("Relax drops the speed and accuracy values", func() {
			rx := calculate(attribs, fullComboScore(attribs), difficulty.Relax)

			convey.So(rx.Speed, convey.ShouldEqual, 0)
			convey.So(rx.Acc, convey.ShouldEqual, 0)
			convey.So(rx.Aim, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Classic and lazer scoring read slider drops differently", func() {
			score := fullComboScore(attribs)
			score.MaxCombo = attribs.MaxCombo - 40

			classic := calculate(attribs, score, difficulty.Classic)

			lazerScore := score
			lazerScore.SliderTailHit = attribs.Sliders - 40

			lazer := calculate(attribs, lazerScore, difficulty.Lazer)

			convey.So(classic.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(lazer.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(lazer.Total, convey.ShouldNotAlmostEqual, classic.Total, 1e-9)
		})

		convey.Convey("Slider tails weigh into current-client accuracy", func() {
			allTails := fullComboScore(attribs)
			allTails.SliderTailHit = attribs.Sliders

			noTails := fullComboScore(attribs)
			noTails.SliderTailHit = 0

			full := calculate(attribs, allTails, difficulty.Lazer)
			dropped := calculate(attribs, noTails, difficulty.Lazer)

			convey.So(dropped.Acc, convey.ShouldBeLessThan, full.Acc)
			convey.So(dropped.Total, convey.ShouldBeLessThan, full.Total)
		})

		convey.Convey("Current-client scoring is the default", func() {
			score := fullComboScore(attribs)
			score.MaxCombo = attribs.MaxCombo - 40
			score.Great -= 3
			score.Ok = 3

			nomod := calculate(attribs, score, difficulty.None)
			lazer := calculate(attribs, score, difficulty.Lazer)
			classic := calculate(attribs, score, difficulty.Classic)

			convey.So(nomod.Total, convey.ShouldAlmostEqual, lazer.Total, 1e-9)
			convey.So(nomod.Total, convey.ShouldNotAlmostEqual, classic.Total, 1e-9)
		})

		convey.Convey("An all-miss score earns no accuracy pp", func() {
			score := api.ScoreStatistics{Miss: attribs.ObjectCount, MaxCombo: 1, SliderTailHit: 0}
			res := calculate(attribs, score, difficulty.None)

			convey.So(res.Acc, convey.ShouldEqual, 0)
		})
	})
}
