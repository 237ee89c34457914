package performance_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/rulesets/catch/performance"
	"github.com/arisena/gopp/framework/math/vector"
)

// fruitLane builds circles alternating between two x positions.
func fruitLane(count int, spread float32, interval float64) []objects.IHitObject {
	hitObjects := make([]objects.IHitObject, 0, count)

	for i := 0; i < count; i++ {
		x := 100 + float32(i%2)*spread

		hitObjects = append(hitObjects, objects.NewCircle(vector.NewVec2f(x, 192), float64(i)*interval, 0, false))
	}

	return hitObjects
}

func TestCatchDifficulty(t *testing.T) {
	convey.Convey("Given the movement skill", t, func() {
		diff := difficulty.NewDifficulty(5, 4, 5, 8)
		calc := performance.NewDifficultyCalculator()

		convey.Convey("A lane of fruits produces a rating", func() {
			attr := calc.CalculateSingle(fruitLane(200, 200, 300), diff)

			convey.So(attr.Total, convey.ShouldBeGreaterThan, 0)
			convey.So(attr.MaxCombo, convey.ShouldEqual, 200)
		})

		convey.Convey("Wider jumps need more movement", func() {
			narrow := calc.CalculateSingle(fruitLane(200, 40, 300), diff)
			wide := calc.CalculateSingle(fruitLane(200, 300, 300), diff)

			convey.So(wide.Total, convey.ShouldBeGreaterThan, narrow.Total)
		})

		convey.Convey("A faster clock is harder to follow", func() {
			normal := calc.CalculateSingle(fruitLane(200, 200, 300), diff)

			dt := diff.Clone()
			dt.SetMods(difficulty.DoubleTime)
			faster := calc.CalculateSingle(fruitLane(200, 200, 300), dt)

			convey.So(faster.Total, convey.ShouldBeGreaterThan, normal.Total)
		})
	})
}

func TestCatchPerformance(t *testing.T) {
	convey.Convey("Given a catch star rating", t, func() {
		diff := difficulty.NewDifficulty(5, 4, 5, 8)
		attribs := performance.NewDifficultyCalculator().CalculateSingle(fruitLane(300, 200, 300), diff)

		full := api.ScoreStatistics{Great: 300, MaxCombo: 300, SliderTailHit: -1}
		ss := performance.NewPPCalculator().Calculate(attribs, full, diff)

		convey.Convey("A full catch is worth pp", func() {
			convey.So(ss.Total, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Dropped fruits cost pp twice, via misses and combo", func() {
			dropped := performance.NewPPCalculator().Calculate(attribs,
				api.ScoreStatistics{Great: 290, Miss: 10, MaxCombo: 150, SliderTailHit: -1}, diff)

			convey.So(dropped.Total, convey.ShouldBeLessThan, ss.Total)
		})

		convey.Convey("Missed tiny droplets only touch the accuracy", func() {
			sloppy := performance.NewPPCalculator().Calculate(attribs,
				api.ScoreStatistics{Great: 300, MaxCombo: 300, SmallTickMiss: 30, SliderTailHit: -1}, diff)

			convey.So(sloppy.Total, convey.ShouldBeLessThan, ss.Total)
			convey.So(sloppy.EffectiveMissCount, convey.ShouldEqual, 0)
		})
	})
}
