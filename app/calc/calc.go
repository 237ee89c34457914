package calc

import (
	"fmt"

	"github.com/arisena/gopp/app/beatmap"
	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/rulesets/api"
	catchperf "github.com/arisena/gopp/app/rulesets/catch/performance"
	maniaperf "github.com/arisena/gopp/app/rulesets/mania/performance"
	"github.com/arisena/gopp/app/rulesets/osu/performance/pp241007"
	taikoperf "github.com/arisena/gopp/app/rulesets/taiko/performance"
)

// Request describes one calculation. The beatmap comes either from Path or
// from Data. Judgements come either from a target Accuracy with a miss count
// or from explicit Statistics, never both.
type Request struct {
	Path string
	Data []byte

	// Mode to calculate in. Osu means "the map's native mode"; the only
	// cross-mode request honored is catch on an osu map, whose geometry
	// feeds the movement skill directly.
	Mode api.Mode

	Mods []string

	// Speed overrides the rate of DT/HT class mods when positive
	Speed float64

	// Accuracy is the target accuracy in percent, 0 means 100
	Accuracy float64
	Misses   int

	// Combo is the highest combo of the score, 0 means a full combo
	Combo int

	// LegacyTotalScore marks the score as set on the classic client; the
	// CL modifier requires it
	LegacyTotalScore int64

	Statistics *api.ScoreStatistics
}

// Result is the complete outcome of one calculation. It is never partial:
// any failure surfaces as an error instead.
type Result struct {
	Mode api.Mode
	Mods difficulty.Modifier

	Artist  string
	Title   string
	Creator string
	Version string

	Attributes api.Attributes
	PP         api.PPv2Results

	// Statistics actually used, either the explicit ones or the simulated
	// spread for the target accuracy
	Statistics api.ScoreStatistics

	// DrainLength is the playable time in ms with breaks removed, at the
	// modified rate
	DrainLength float64

	EngineVersion int
}

// Stars returns the total star rating.
func (res Result) Stars() float64 {
	return res.Attributes.Total
}

type ruleset struct {
	newDifficulty  func() api.IDifficultyCalculator
	newPerformance func() api.IPerformanceCalculator
}

// Calculator instances carry per-run state, so every calculation builds
// fresh ones.
var rulesets = map[api.Mode]ruleset{
	api.Osu:   {pp241007.NewDifficultyCalculator, pp241007.NewPPCalculator},
	api.Taiko: {taikoperf.NewDifficultyCalculator, taikoperf.NewPPCalculator},
	api.Catch: {catchperf.NewDifficultyCalculator, catchperf.NewPPCalculator},
	api.Mania: {maniaperf.NewDifficultyCalculator, maniaperf.NewPPCalculator},
}

// Calculate parses the beatmap, applies modifiers and stacking, runs the
// mode's difficulty skills and the performance formula. Each call works on
// its own parsed map, so concurrent calls never share mutable state.
func Calculate(req Request) (Result, error) {
	beatMap, mode, diff, err := prepare(req)
	if err != nil {
		return Result{}, err
	}

	rs := rulesets[mode]

	diffCalc := rs.newDifficulty()
	attribs := diffCalc.CalculateSingle(beatMap.HitObjects, diff)

	score, err := buildStatistics(req, mode, beatMap, attribs)
	if err != nil {
		return Result{}, err
	}

	if err := validate(mode, score, attribs, diff); err != nil {
		return Result{}, err
	}

	results := rs.newPerformance().Calculate(attribs, score, diff)

	return Result{
		Mode:          mode,
		Mods:          diff.Mods,
		Artist:        beatMap.Artist,
		Title:         beatMap.Name,
		Creator:       beatMap.Creator,
		Version:       beatMap.Version,
		Attributes:    attribs,
		PP:            results,
		Statistics:    score,
		DrainLength:   beatMap.DrainLength() / diff.Speed,
		EngineVersion: diffCalc.GetVersion(),
	}, nil
}

// CalculateStep returns the running star rating after every object of the
// map, for difficulty graphs and live star counters.
func CalculateStep(req Request) ([]api.Attributes, error) {
	beatMap, mode, diff, err := prepare(req)
	if err != nil {
		return nil, err
	}

	return rulesets[mode].newDifficulty().CalculateStep(beatMap.HitObjects, diff), nil
}

// CalculateStrainPeaks returns the raw per-section skill strains of the map.
func CalculateStrainPeaks(req Request) (api.StrainPeaks, error) {
	beatMap, mode, diff, err := prepare(req)
	if err != nil {
		return api.StrainPeaks{}, err
	}

	return rulesets[mode].newDifficulty().CalculateStrainPeaks(beatMap.HitObjects, diff), nil
}

// prepare parses the map, resolves the mode, applies modifiers and the
// stacking pass. Every public operation starts here.
func prepare(req Request) (*beatmap.BeatMap, api.Mode, *difficulty.Difficulty, error) {
	beatMap, err := load(req)
	if err != nil {
		return nil, 0, nil, err
	}

	mode, err := effectiveMode(req.Mode, beatMap.Mode)
	if err != nil {
		return nil, 0, nil, err
	}

	mods, err := difficulty.ParseAcronyms(req.Mods)
	if err != nil {
		return nil, 0, nil, err
	}

	diff := beatMap.Diff.Clone()
	diff.SetMods(mods)

	if req.Speed > 0 {
		diff.SetCustomSpeed(req.Speed)
	}

	if mode == api.Osu {
		beatmap.ApplyStacking(beatMap, diff)
	}

	return beatMap, mode, diff, nil
}

func load(req Request) (*beatmap.BeatMap, error) {
	if len(req.Data) > 0 {
		return beatmap.ParseBytes(req.Data)
	}

	if req.Path != "" {
		return beatmap.ParseFile(req.Path)
	}

	return nil, ErrNoSource
}

func effectiveMode(requested api.Mode, declared int) (api.Mode, error) {
	if declared < int(api.Osu) || declared > int(api.Mania) {
		return 0, fmt.Errorf("%w: beatmap declares mode %d", ErrUnsupportedMode, declared)
	}

	native := api.Mode(declared)

	if requested == native || requested == api.Osu {
		return native, nil
	}

	if native == api.Osu && requested == api.Catch {
		return api.Catch, nil
	}

	return 0, fmt.Errorf("%w: cannot calculate a %s map as %s", ErrUnsupportedMode, native, requested)
}

func buildStatistics(req Request, mode api.Mode, beatMap *beatmap.BeatMap, attribs api.Attributes) (api.ScoreStatistics, error) {
	var score api.ScoreStatistics

	if req.Statistics != nil {
		if req.Accuracy > 0 {
			return score, newStatisticsError("target accuracy and explicit statistics are mutually exclusive")
		}

		score = *req.Statistics
	} else {
		accuracy := req.Accuracy
		if accuracy <= 0 {
			accuracy = 100
		}

		if accuracy > 100 {
			return score, newStatisticsError("accuracy %.2f%% out of range", accuracy)
		}

		if req.Misses < 0 || req.Misses > attribs.ObjectCount {
			return score, newStatisticsError("miss count %d out of range", req.Misses)
		}

		switch mode {
		case api.Taiko:
			score = simulateTaiko(accuracy/100, attribs.ObjectCount, req.Misses)
		case api.Catch:
			score = simulateCatch(beatMap.HitObjects, req.Misses)
		case api.Mania:
			score = simulateMania(accuracy/100, attribs.ObjectCount, req.Misses)
		default:
			score = simulateOsu(accuracy/100, attribs.ObjectCount, req.Misses)
		}
	}

	if score.MaxCombo == 0 {
		score.MaxCombo = req.Combo
	}

	if score.MaxCombo == 0 {
		score.MaxCombo = attribs.MaxCombo
	}

	if score.LegacyTotalScore == 0 {
		score.LegacyTotalScore = req.LegacyTotalScore
	}

	return score, nil
}

func validate(mode api.Mode, score api.ScoreStatistics, attribs api.Attributes, diff *difficulty.Difficulty) error {
	if score.MaxCombo < 0 || score.MaxCombo > attribs.MaxCombo {
		return newStatisticsError("combo %d exceeds the maximum %d", score.MaxCombo, attribs.MaxCombo)
	}

	// catch counts nested droplets, its totals legitimately exceed the
	// object count
	if mode != api.Catch && score.TotalHits() > attribs.ObjectCount {
		return newStatisticsError("%d judgements on %d objects", score.TotalHits(), attribs.ObjectCount)
	}

	if score.IsLegacyScore() && !diff.CheckModActive(difficulty.Classic) {
		return newStatisticsError("legacy total score requires the CL modifier")
	}

	if diff.CheckModActive(difficulty.Classic) && !score.IsLegacyScore() {
		return newStatisticsError("the CL modifier requires a positive legacy total score")
	}

	return nil
}
