package performance_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/rulesets/mania/performance"
	"github.com/arisena/gopp/framework/math/vector"
)

// columnX centers a note in the given column of a 4 key layout.
func columnX(column int) float32 {
	return float32(column)*128 + 64
}

// stream builds a one-note-per-interval pattern cycling through 4 columns.
func stream(count int, interval float64) []objects.IHitObject {
	notes := make([]objects.IHitObject, 0, count)

	for i := 0; i < count; i++ {
		pos := vector.NewVec2f(columnX(i%4), 192)
		notes = append(notes, objects.NewCircle(pos, float64(i)*interval, 0, false))
	}

	return notes
}

// withHolds replaces every fourth note with a long note spanning two intervals.
func withHolds(count int, interval float64) []objects.IHitObject {
	notes := make([]objects.IHitObject, 0, count)

	for i := 0; i < count; i++ {
		start := float64(i) * interval
		pos := vector.NewVec2f(columnX(i%4), 192)

		if i%4 == 0 {
			notes = append(notes, objects.NewHold(pos, start, start+2*interval, 0))
		} else {
			notes = append(notes, objects.NewCircle(pos, start, 0, false))
		}
	}

	return notes
}

func TestManiaDifficulty(t *testing.T) {
	convey.Convey("Given the mania strain skill", t, func() {
		diff := difficulty.NewDifficulty(8, 4, 8, 5) // 4 keys
		calc := performance.NewDifficultyCalculator()

		convey.Convey("A stream produces a rating", func() {
			attr := calc.CalculateSingle(stream(200, 150), diff)

			convey.So(attr.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(attr.MaxCombo, convey.ShouldEqual, 200)
			convey.So(attr.Circles, convey.ShouldEqual, 200)
		})

		convey.Convey("Long notes are counted and add difficulty", func() {
			plain := calc.CalculateSingle(stream(200, 150), diff)
			held := calc.CalculateSingle(withHolds(200, 150), diff)

			convey.So(held.Holds, convey.ShouldEqual, 50)
			convey.So(held.Total, convey.ShouldBeGreaterThan, plain.Total)
		})

		convey.Convey("Denser streams are harder", func() {
			slow := calc.CalculateSingle(stream(200, 300), diff)
			fast := calc.CalculateSingle(stream(200, 120), diff)

			convey.So(fast.Total, convey.ShouldBeGreaterThan, slow.Total)
		})

		convey.Convey("A faster clock is harder", func() {
			normal := calc.CalculateSingle(stream(200, 150), diff)

			dt := diff.Clone()
			dt.SetMods(difficulty.DoubleTime)
			faster := calc.CalculateSingle(stream(200, 150), dt)

			convey.So(faster.Total, convey.ShouldBeGreaterThan, normal.Total)
		})

		convey.Convey("The hit window is rate-adjusted exactly once", func() {
			dt := diff.Clone()
			dt.SetMods(difficulty.DoubleTime)

			attr := calc.CalculateSingle(stream(10, 150), dt)

			convey.So(attr.GreatHitWindow, convey.ShouldAlmostEqual, dt.Hit300U/dt.Speed, 1e-9)
		})
	})
}

func TestManiaPerformance(t *testing.T) {
	convey.Convey("Given a mania star rating", t, func() {
		diff := difficulty.NewDifficulty(8, 4, 8, 5)
		attribs := performance.NewDifficultyCalculator().CalculateSingle(stream(300, 150), diff)

		perfect := api.ScoreStatistics{Perfect: 300, MaxCombo: 300}
		ss := performance.NewPPCalculator().Calculate(attribs, perfect, diff)

		convey.Convey("A perfect score is worth pp", func() {
			convey.So(ss.Total, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Lower judgements are worth less", func() {
			cases := []api.ScoreStatistics{
				{Perfect: 200, Great: 100, MaxCombo: 300},
				{Perfect: 200, Great: 50, Good: 50, MaxCombo: 300},
				{Perfect: 200, Good: 50, Meh: 50, MaxCombo: 300},
			}

			previous := ss.Total
			for _, score := range cases {
				res := performance.NewPPCalculator().Calculate(attribs, score, diff)

				convey.So(res.Total, convey.ShouldBeLessThan, previous)
				previous = res.Total
			}
		})

		convey.Convey("Below 80% custom accuracy nothing is awarded", func() {
			bad := performance.NewPPCalculator().Calculate(attribs,
				api.ScoreStatistics{Meh: 300, MaxCombo: 300}, diff)

			convey.So(bad.Total, convey.ShouldEqual, 0)
		})

		convey.Convey("NF and EZ halve and trim the reward", func() {
			nf := diff.Clone()
			nf.SetMods(difficulty.NoFail)
			nfRes := performance.NewPPCalculator().Calculate(attribs, perfect, nf)

			ez := diff.Clone()
			ez.SetMods(difficulty.Easy)
			ezRes := performance.NewPPCalculator().Calculate(attribs, perfect, ez)

			convey.So(nfRes.Total, convey.ShouldAlmostEqual, ss.Total*0.75, 1e-9)
			convey.So(ezRes.Total, convey.ShouldAlmostEqual, ss.Total*0.5, 1e-9)
		})
	})
}
