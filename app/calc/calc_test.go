package calc_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/calc"
	"github.com/arisena/gopp/app/rulesets/api"
)

// buildMap generates a playable osu map: circles alternating between two
// positions, one every 300ms, with a slider in the middle.
func buildMap(mode, circleCount int) []byte {
	var sb strings.Builder

	sb.WriteString("osu file format v14\n\n")
	sb.WriteString("[General]\n")
	fmt.Fprintf(&sb, "Mode: %d\n", mode)
	sb.WriteString("StackLeniency: 0.7\n\n")
	sb.WriteString("[Metadata]\nTitle:Generated\nArtist:Nobody\nCreator:Test\nVersion:Insane\n\n")
	sb.WriteString("[Difficulty]\nHPDrainRate:5\nCircleSize:4\nOverallDifficulty:8\nApproachRate:9\nSliderMultiplier:1.6\nSliderTickRate:1\n\n")
	sb.WriteString("[TimingPoints]\n0,300,4,2,0,100,1,0\n\n")
	sb.WriteString("[HitObjects]\n")

	for i := 0; i < circleCount; i++ {
		x := 100 + (i%2)*150
		fmt.Fprintf(&sb, "%d,200,%d,1,%d\n", x, i*300, (i%4)*2)
	}

	fmt.Fprintf(&sb, "100,300,%d,2,0,L|250:300,1,140\n", circleCount*300)

	return []byte(sb.String())
}

// emptyMap keeps the headers of buildMap but no hit objects.
func emptyMap(mode int) []byte {
	data := string(buildMap(mode, 0))

	return []byte(data[:strings.Index(data, "[HitObjects]\n")+len("[HitObjects]\n")])
}

func TestCalculate(t *testing.T) {
	convey.Convey("Given a generated beatmap", t, func() {
		data := buildMap(0, 100)

		convey.Convey("When calculating with defaults", func() {
			res, err := calc.Calculate(calc.Request{Data: data})

			convey.Convey("Then stars and pp are positive and consistent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Mode, convey.ShouldEqual, api.Osu)
				convey.So(res.Stars(), convey.ShouldBeGreaterThan, 0)
				convey.So(res.PP.Total, convey.ShouldBeGreaterThan, 0)
				convey.So(res.Attributes.ObjectCount, convey.ShouldEqual, 101)
				convey.So(res.Statistics.TotalHits(), convey.ShouldEqual, 101)
				convey.So(res.Statistics.Miss, convey.ShouldEqual, 0)
				convey.So(res.Statistics.MaxCombo, convey.ShouldEqual, res.Attributes.MaxCombo)
			})
		})

		convey.Convey("When calculating twice", func() {
			first, err1 := calc.Calculate(calc.Request{Data: data})
			second, err2 := calc.Calculate(calc.Request{Data: data})

			convey.Convey("Then the results are identical", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(second.Stars(), convey.ShouldEqual, first.Stars())
				convey.So(second.PP.Total, convey.ShouldEqual, first.PP.Total)
			})
		})

		convey.Convey("When lowering the accuracy", func() {
			full, _ := calc.Calculate(calc.Request{Data: data})
			lower, err := calc.Calculate(calc.Request{Data: data, Accuracy: 95})

			convey.Convey("Then pp drops", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(lower.PP.Total, convey.ShouldBeLessThan, full.PP.Total)
				convey.So(lower.Statistics.Ok, convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When adding misses", func() {
			full, _ := calc.Calculate(calc.Request{Data: data})
			missed, err := calc.Calculate(calc.Request{Data: data, Accuracy: 99, Misses: 3})

			convey.Convey("Then pp drops and the misses survive", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(missed.PP.Total, convey.ShouldBeLessThan, full.PP.Total)
				convey.So(missed.Statistics.Miss, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When applying DT", func() {
			nomod, _ := calc.Calculate(calc.Request{Data: data})
			dt, err := calc.Calculate(calc.Request{Data: data, Mods: []string{"DT"}})

			convey.Convey("Then the map gets harder", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(dt.Stars(), convey.ShouldBeGreaterThan, nomod.Stars())
				convey.So(dt.PP.Total, convey.ShouldBeGreaterThan, nomod.PP.Total)
			})
		})

		convey.Convey("When comparing classic and lazer scoring", func() {
			classic, err1 := calc.Calculate(calc.Request{Data: data, Mods: []string{"CL"}, LegacyTotalScore: 1_000_000})
			lazer, err2 := calc.Calculate(calc.Request{Data: data, Mods: []string{"LZ"}})

			convey.Convey("Then the slider handling diverges", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(classic.Stars(), convey.ShouldEqual, lazer.Stars())
				convey.So(classic.PP.Total, convey.ShouldNotAlmostEqual, lazer.PP.Total, 1e-9)
			})
		})

		convey.Convey("When requesting the step calculation", func() {
			steps, err := calc.CalculateStep(calc.Request{Data: data})

			convey.Convey("Then every prefix gets a star rating", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(steps), convey.ShouldEqual, 101)
				convey.So(steps[len(steps)-1].Total, convey.ShouldBeGreaterThan, steps[0].Total)
			})
		})

		convey.Convey("When requesting strain peaks", func() {
			peaks, err := calc.CalculateStrainPeaks(calc.Request{Data: data})

			convey.Convey("Then all skills report sections", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(peaks.Total), convey.ShouldBeGreaterThan, 0)
				convey.So(len(peaks.Aim), convey.ShouldEqual, len(peaks.Total))
				convey.So(len(peaks.Speed), convey.ShouldEqual, len(peaks.Total))
			})
		})
	})
}

func TestCalculateOtherModes(t *testing.T) {
	convey.Convey("Given maps in every mode", t, func() {
		convey.Convey("When calculating a taiko map", func() {
			res, err := calc.Calculate(calc.Request{Data: buildMap(1, 100)})

			convey.Convey("Then the native mode wins and stars come out", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Mode, convey.ShouldEqual, api.Taiko)
				convey.So(res.Stars(), convey.ShouldBeGreaterThan, 0)
				convey.So(res.PP.Total, convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When calculating a mania map", func() {
			res, err := calc.Calculate(calc.Request{Data: buildMap(3, 100)})

			convey.Convey("Then the strain skill produces a rating", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Mode, convey.ShouldEqual, api.Mania)
				convey.So(res.Stars(), convey.ShouldBeGreaterThan, 0)
				convey.So(res.PP.Total, convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When calculating an osu map as catch", func() {
			res, err := calc.Calculate(calc.Request{Data: buildMap(0, 100), Mode: api.Catch})

			convey.Convey("Then the movement skill accepts the geometry", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Mode, convey.ShouldEqual, api.Catch)
				convey.So(res.Stars(), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When requesting an unsupported conversion", func() {
			_, err := calc.Calculate(calc.Request{Data: buildMap(3, 10), Mode: api.Taiko})

			convey.Convey("Then the mode is rejected", func() {
				convey.So(err, convey.ShouldWrap, calc.ErrUnsupportedMode)
			})
		})

		convey.Convey("When the map has no hit objects", func() {
			for mode := 0; mode <= 3; mode++ {
				res, err := calc.Calculate(calc.Request{Data: emptyMap(mode)})

				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Stars(), convey.ShouldEqual, 0)
				convey.So(res.Attributes.ObjectCount, convey.ShouldEqual, 0)

				steps, err := calc.CalculateStep(calc.Request{Data: emptyMap(mode)})

				convey.So(err, convey.ShouldBeNil)
				convey.So(steps, convey.ShouldBeEmpty)
			}
		})
	})
}

func TestCalculateValidation(t *testing.T) {
	convey.Convey("Given an osu map", t, func() {
		data := buildMap(0, 50)

		convey.Convey("When no source is given", func() {
			_, err := calc.Calculate(calc.Request{})

			convey.So(err, convey.ShouldWrap, calc.ErrNoSource)
		})

		convey.Convey("When the combo exceeds the maximum", func() {
			_, err := calc.Calculate(calc.Request{Data: data, Combo: 100000})

			convey.So(err, convey.ShouldWrap, calc.ErrInvalidStatistics)
		})

		convey.Convey("When CL comes without a legacy score", func() {
			_, err := calc.Calculate(calc.Request{Data: data, Mods: []string{"CL"}})

			convey.So(err, convey.ShouldWrap, calc.ErrInvalidStatistics)
		})

		convey.Convey("When a legacy score comes without CL", func() {
			_, err := calc.Calculate(calc.Request{Data: data, LegacyTotalScore: 500_000})

			convey.So(err, convey.ShouldWrap, calc.ErrInvalidStatistics)
		})

		convey.Convey("When accuracy and statistics are both set", func() {
			stats := &api.ScoreStatistics{Great: 50, SliderTailHit: -1}
			_, err := calc.Calculate(calc.Request{Data: data, Accuracy: 99, Statistics: stats})

			convey.So(err, convey.ShouldWrap, calc.ErrInvalidStatistics)
		})

		convey.Convey("When the statistics claim too many hits", func() {
			stats := &api.ScoreStatistics{Great: 5000, SliderTailHit: -1}
			_, err := calc.Calculate(calc.Request{Data: data, Statistics: stats})

			convey.So(err, convey.ShouldWrap, calc.ErrInvalidStatistics)
		})

		convey.Convey("When the accuracy is out of range", func() {
			_, err := calc.Calculate(calc.Request{Data: data, Accuracy: 150})

			convey.So(err, convey.ShouldWrap, calc.ErrInvalidStatistics)
		})

		convey.Convey("When the mods are unknown", func() {
			_, err := calc.Calculate(calc.Request{Data: data, Mods: []string{"ZZ"}})

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
