package performance_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/rulesets/taiko/performance"
	"github.com/arisena/gopp/framework/math/vector"
)

// drumRoll builds an alternating don/kat pattern, one note per interval.
func drumRoll(count int, interval float64) []objects.IHitObject {
	notes := make([]objects.IHitObject, 0, count)

	for i := 0; i < count; i++ {
		hitSound := 0
		if i%2 == 1 {
			hitSound = objects.SoundWhistle
		}

		notes = append(notes, objects.NewCircle(vector.NewVec2f(256, 192), float64(i)*interval, hitSound, false))
	}

	return notes
}

func TestTaikoDifficulty(t *testing.T) {
	convey.Convey("Given the taiko strain skill", t, func() {
		diff := difficulty.NewDifficulty(5, 5, 5, 5)
		calc := performance.NewDifficultyCalculator()

		convey.Convey("A pattern produces a positive star rating", func() {
			attr := calc.CalculateSingle(drumRoll(200, 200), diff)

			convey.So(attr.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(attr.MaxCombo, convey.ShouldEqual, 200)
			convey.So(attr.GreatHitWindow, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Denser patterns are harder", func() {
			slow := calc.CalculateSingle(drumRoll(200, 400), diff)
			fast := calc.CalculateSingle(drumRoll(200, 150), diff)

			convey.So(fast.Total, convey.ShouldBeGreaterThan, slow.Total)
		})

		convey.Convey("A faster clock makes the same pattern harder", func() {
			normal := calc.CalculateSingle(drumRoll(200, 200), diff)

			dt := diff.Clone()
			dt.SetMods(difficulty.DoubleTime)
			faster := calc.CalculateSingle(drumRoll(200, 200), dt)

			convey.So(faster.Total, convey.ShouldBeGreaterThan, normal.Total)
		})

		convey.Convey("The hit window is rate-adjusted exactly once", func() {
			dt := diff.Clone()
			dt.SetMods(difficulty.DoubleTime)

			attr := calc.CalculateSingle(drumRoll(10, 200), dt)

			convey.So(attr.GreatHitWindow, convey.ShouldAlmostEqual, dt.Hit300U/dt.Speed, 1e-9)
		})

		convey.Convey("A single note has no difficulty", func() {
			attr := calc.CalculateSingle(drumRoll(1, 200), diff)

			convey.So(attr.Total, convey.ShouldEqual, 0)
		})

		convey.Convey("The step calculation never decreases", func() {
			steps := calc.CalculateStep(drumRoll(50, 200), diff)

			convey.So(len(steps), convey.ShouldEqual, 50)
			convey.So(steps[49].Total, convey.ShouldBeGreaterThanOrEqualTo, steps[10].Total)
		})
	})
}

func TestTaikoPerformance(t *testing.T) {
	convey.Convey("Given a taiko star rating", t, func() {
		diff := difficulty.NewDifficulty(5, 5, 5, 5)
		attribs := performance.NewDifficultyCalculator().CalculateSingle(drumRoll(300, 200), diff)

		ppCalc := performance.NewPPCalculator()

		full := api.ScoreStatistics{Great: 300, MaxCombo: 300}
		ss := ppCalc.Calculate(attribs, full, diff)

		convey.Convey("An SS earns strain and accuracy pp", func() {
			convey.So(ss.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(ss.Acc, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Misses drain the strain value", func() {
			missed := performance.NewPPCalculator().Calculate(attribs, api.ScoreStatistics{Great: 290, Miss: 10, MaxCombo: 150}, diff)

			convey.So(missed.Total, convey.ShouldBeLessThan, ss.Total)
			convey.So(missed.EffectiveMissCount, convey.ShouldEqual, 10)
		})

		convey.Convey("Half hits drag the accuracy down", func() {
			sloppy := performance.NewPPCalculator().Calculate(attribs, api.ScoreStatistics{Great: 250, Ok: 50, MaxCombo: 300}, diff)

			convey.So(sloppy.Total, convey.ShouldBeLessThan, ss.Total)
			convey.So(sloppy.Acc, convey.ShouldBeLessThan, ss.Acc)
		})
	})
}
