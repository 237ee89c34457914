package beatmap

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/beatmap/objects"
	"github.com/arisena/gopp/framework/math/curves"
	"github.com/arisena/gopp/framework/math/vector"
)

// earlyVersionTimingOffset is added to every time value of format versions
// below 5, same as the reference decoder.
const earlyVersionTimingOffset = 24.0

type parserState struct {
	beatMap *BeatMap

	section string
	lineNum int

	offset float64

	odSeen bool
	arSeen bool

	hp, cs, od, ar float64
	sliderMult     float64
	tickRate       float64

	timingRows []timingRow
}

type timingRow struct {
	time       float64
	beatLength float64
	inherited  bool
}

// ParseFile parses the .osu file at the given path.
func ParseFile(path string) (*BeatMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return ParseReader(f)
}

// ParseBytes parses raw .osu file contents.
func ParseBytes(data []byte) (*BeatMap, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader reads the community-standard sectioned beatmap format and
// produces an immutable BeatMap. Unknown sections and comment lines are
// skipped; malformed timing or hitobject rows fail with a ParseError.
func ParseReader(r io.Reader) (*BeatMap, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	state := &parserState{
		beatMap: &BeatMap{
			StackLeniency: 0.7,
		},
		hp: 5, cs: 5, od: 5, ar: 5,
		sliderMult: 1.4,
		tickRate:   1,
	}

	if err := state.parseHeader(scanner); err != nil {
		return nil, err
	}

	for scanner.Scan() {
		state.lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			state.section = strings.ToLower(line[1 : len(line)-1])
			continue
		}

		var err error

		switch state.section {
		case "general":
			state.parseGeneral(line)
		case "metadata":
			state.parseMetadata(line)
		case "difficulty":
			state.parseDifficulty(line)
		case "events":
			state.parseEvents(line)
		case "timingpoints":
			err = state.parseTimingPoint(line)
		case "hitobjects":
			err = state.parseHitObject(line)
		}

		if err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return state.finalize()
}

func (state *parserState) parseHeader(scanner *bufio.Scanner) error {
	for scanner.Scan() {
		state.lineNum++

		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "\uFEFF")

		if line == "" {
			continue
		}

		if !strings.HasPrefix(strings.ToLower(line), "osu file format v") {
			return newParseError("", state.lineNum, "invalid beatmap header: %q", line)
		}

		version, err := strconv.Atoi(strings.TrimSpace(line[len("osu file format v"):]))
		if err != nil {
			return newParseError("", state.lineNum, "invalid format version: %q", line)
		}

		state.beatMap.FormatVersion = version
		if version < 5 {
			state.offset = earlyVersionTimingOffset
		}

		return nil
	}

	return newParseError("", state.lineNum, "empty beatmap")
}

func keyValue(line string) (string, string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return strings.TrimSpace(line), ""
	}

	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:])
}

func (state *parserState) parseGeneral(line string) {
	key, value := keyValue(line)

	switch strings.ToLower(key) {
	case "mode":
		state.beatMap.Mode = parseIntDef(value, 0)
	case "stackleniency":
		state.beatMap.StackLeniency = parseFloatDef(value, 0.7)
	}
}

func (state *parserState) parseMetadata(line string) {
	key, value := keyValue(line)

	switch strings.ToLower(key) {
	case "title":
		state.beatMap.Name = value
	case "artist":
		state.beatMap.Artist = value
	case "creator":
		state.beatMap.Creator = value
	case "version":
		state.beatMap.Version = value
	}
}

func (state *parserState) parseDifficulty(line string) {
	key, value := keyValue(line)

	switch strings.ToLower(key) {
	case "hpdrainrate":
		state.hp = parseFloatDef(value, 5)
	case "circlesize":
		state.cs = parseFloatDef(value, 5)
	case "overalldifficulty":
		state.od = parseFloatDef(value, 5)
		state.odSeen = true

		// old maps without an explicit AR inherit it from OD
		if !state.arSeen {
			state.ar = state.od
		}
	case "approachrate":
		state.ar = parseFloatDef(value, 5)
		state.arSeen = true
	case "slidermultiplier":
		state.sliderMult = parseFloatDef(value, 1.4)
	case "slidertickrate":
		state.tickRate = parseFloatDef(value, 1)
	}
}

func (state *parserState) parseEvents(line string) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return
	}

	evType := strings.ToLower(strings.TrimSpace(parts[0]))
	if evType != "2" && evType != "break" {
		return
	}

	start := parseFloatDef(parts[1], 0) + state.offset
	end := max(start, parseFloatDef(parts[2], 0)+state.offset)

	state.beatMap.Breaks = append(state.beatMap.Breaks, [2]float64{start, end})
}

func (state *parserState) parseTimingPoint(line string) error {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return newParseError("TimingPoints", state.lineNum, "expected at least 2 fields, got %d", len(parts))
	}

	time, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	beatLength, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)

	if err1 != nil || err2 != nil {
		return newParseError("TimingPoints", state.lineNum, "malformed timing point %q", line)
	}

	inherited := beatLength < 0

	if len(parts) >= 7 {
		inherited = strings.TrimSpace(parts[6]) != "1"
	}

	state.timingRows = append(state.timingRows, timingRow{time: time + state.offset, beatLength: beatLength, inherited: inherited})

	return nil
}

func (state *parserState) parseHitObject(line string) error {
	parts := strings.Split(line, ",")
	if len(parts) < 5 {
		return newParseError("HitObjects", state.lineNum, "expected at least 5 fields, got %d", len(parts))
	}

	x, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	startTime, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	objType, err4 := strconv.Atoi(strings.TrimSpace(parts[3]))
	hitSound, err5 := strconv.Atoi(strings.TrimSpace(parts[4]))

	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return newParseError("HitObjects", state.lineNum, "malformed hit object %q", line)
	}

	startTime += state.offset
	pos := vector.NewVec2d(x, y)
	newCombo := objType&4 > 0

	switch {
	case objType&1 > 0: // circle
		state.beatMap.HitObjects = append(state.beatMap.HitObjects, objects.NewCircle(pos, startTime, hitSound, newCombo))
	case objType&2 > 0: // slider
		if len(parts) < 8 {
			return newParseError("HitObjects", state.lineNum, "slider needs at least 8 fields, got %d", len(parts))
		}

		typ, controlPoints := parseSliderPath(pos, parts[5])

		repeats := parseIntDef(parts[6], 1)
		pixelLength := parseFloatDef(parts[7], 0)

		if repeats < 1 || pixelLength < 0 || math.IsNaN(pixelLength) {
			return newParseError("HitObjects", state.lineNum, "invalid slider geometry %q", line)
		}

		state.beatMap.HitObjects = append(state.beatMap.HitObjects, objects.NewSlider(pos, startTime, typ, controlPoints, repeats, pixelLength, hitSound, newCombo))
	case objType&8 > 0: // spinner
		endTime := startTime
		if len(parts) >= 6 {
			endTime = parseFloatDef(parts[5], startTime) + state.offset
		}

		state.beatMap.HitObjects = append(state.beatMap.HitObjects, objects.NewSpinner(startTime, endTime, hitSound, newCombo))
	case objType&128 > 0: // mania hold
		endTime := startTime
		if len(parts) >= 6 {
			endStr := parts[5]
			if idx := strings.Index(endStr, ":"); idx >= 0 {
				endStr = endStr[:idx]
			}

			endTime = parseFloatDef(endStr, startTime) + state.offset
		}

		state.beatMap.HitObjects = append(state.beatMap.HitObjects, objects.NewHold(pos, startTime, endTime, hitSound))
	default:
		return newParseError("HitObjects", state.lineNum, "unknown object type %d", objType)
	}

	return nil
}

func parseSliderPath(head vector.Vector2f, spec string) (curves.CurveType, []vector.Vector2f) {
	tokens := strings.Split(spec, "|")

	typ := curves.CBezier

	switch strings.ToUpper(strings.TrimSpace(tokens[0])) {
	case "L":
		typ = curves.CLine
	case "C":
		typ = curves.CCatmull
	case "P":
		typ = curves.CCirArc
	}

	controlPoints := make([]vector.Vector2f, 0, len(tokens))
	controlPoints = append(controlPoints, head)

	for _, token := range tokens[1:] {
		xy := strings.Split(strings.TrimSpace(token), ":")
		if len(xy) != 2 {
			continue
		}

		controlPoints = append(controlPoints, vector.NewVec2d(
			parseFloatDef(xy[0], float64(head.X)),
			parseFloatDef(xy[1], float64(head.Y)),
		))
	}

	// perfect circle needs exactly 3 points, anything else degrades to bezier
	if typ == curves.CCirArc && len(controlPoints) != 3 {
		typ = curves.CBezier
	}

	return typ, controlPoints
}

func (state *parserState) finalize() (*BeatMap, error) {
	beatMap := state.beatMap

	beatMap.Diff = difficulty.NewDifficulty(state.hp, state.cs, state.od, state.ar)
	beatMap.Diff.SliderMultiplier = state.sliderMult
	beatMap.Diff.SliderTickRate = state.tickRate

	beatMap.Timings = objects.NewTimings(state.sliderMult, state.tickRate)

	for _, row := range state.timingRows {
		beatMap.Timings.AddPoint(row.time, row.beatLength, row.inherited)
	}

	beatMap.Timings.FinalizePoints()

	sort.SliceStable(beatMap.HitObjects, func(i, j int) bool {
		return beatMap.HitObjects[i].GetStartTime() < beatMap.HitObjects[j].GetStartTime()
	})

	for _, o := range beatMap.HitObjects {
		if slider, ok := o.(*objects.Slider); ok {
			slider.SetTiming(beatMap.Timings)
		}
	}

	return beatMap, nil
}

func parseIntDef(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}

	return v
}

func parseFloatDef(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return def
	}

	return v
}
