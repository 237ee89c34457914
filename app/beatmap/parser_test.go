package beatmap

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/arisena/gopp/app/beatmap/objects"
)

const testMap = `osu file format v14

[General]
StackLeniency: 0.7
Mode: 0

[Metadata]
Title:Night Sky
Artist:Someone
Creator:Mapper
Version:Hard

[Difficulty]
HPDrainRate:6
CircleSize:4
OverallDifficulty:8
ApproachRate:9
SliderMultiplier:1.6
SliderTickRate:1

[Events]
// background line is skipped
2,1000,2000

[TimingPoints]
0,500,4,2,0,100,1,0
1000,-50,4,2,0,100,0,0

[HitObjects]
256,192,1500,12,0,2000
100,100,0,1,0,0:0:0:0:
200,100,500,2,0,L|300:100,1,100
`

func TestParseBytes(t *testing.T) {
	beatMap, err := ParseBytes([]byte(testMap))
	if err != nil {
		t.Fatal(err)
	}

	if beatMap.FormatVersion != 14 {
		t.Errorf("FormatVersion = %d, want 14", beatMap.FormatVersion)
	}
	if beatMap.Name != "Night Sky" || beatMap.Artist != "Someone" || beatMap.Creator != "Mapper" || beatMap.Version != "Hard" {
		t.Errorf("metadata = %q/%q/%q/%q", beatMap.Name, beatMap.Artist, beatMap.Creator, beatMap.Version)
	}

	if got := beatMap.Diff.GetBaseOD(); got != 8 {
		t.Errorf("OD = %v, want 8", got)
	}
	if got := beatMap.Diff.GetBaseAR(); got != 9 {
		t.Errorf("AR = %v, want 9", got)
	}

	if len(beatMap.HitObjects) != 3 {
		t.Fatalf("got %d objects, want 3", len(beatMap.HitObjects))
	}

	// objects come out sorted by start time regardless of file order
	if _, ok := beatMap.HitObjects[0].(*objects.Circle); !ok {
		t.Errorf("first object is %T, want circle", beatMap.HitObjects[0])
	}

	slider, ok := beatMap.HitObjects[1].(*objects.Slider)
	if !ok {
		t.Fatalf("second object is %T, want slider", beatMap.HitObjects[1])
	}

	// 100px at 1.6*100px per 500ms beat
	wantEnd := 500 + 100/(160.0/500)
	if got := slider.GetEndTime(); math.Abs(got-wantEnd) > 1e-6 {
		t.Errorf("slider end = %v, want %v", got, wantEnd)
	}

	if _, ok := beatMap.HitObjects[2].(*objects.Spinner); !ok {
		t.Errorf("third object is %T, want spinner", beatMap.HitObjects[2])
	}

	if len(beatMap.Breaks) != 1 || beatMap.Breaks[0] != [2]float64{1000, 2000} {
		t.Errorf("breaks = %v", beatMap.Breaks)
	}
}

func TestParseByteOrderMark(t *testing.T) {
	beatMap, err := ParseBytes([]byte("\xef\xbb\xbf" + testMap))
	if err != nil {
		t.Fatal(err)
	}

	if beatMap.FormatVersion != 14 {
		t.Errorf("FormatVersion = %d, want 14", beatMap.FormatVersion)
	}
}

func TestParseOldVersionOffset(t *testing.T) {
	data := strings.Replace(testMap, "osu file format v14", "osu file format v4", 1)

	beatMap, err := ParseBytes([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if got := beatMap.HitObjects[0].GetStartTime(); got != 24 {
		t.Errorf("start = %v, want the 24ms offset applied", got)
	}
}

func TestParseInheritedVelocity(t *testing.T) {
	beatMap, err := ParseBytes([]byte(testMap))
	if err != nil {
		t.Fatal(err)
	}

	if got := beatMap.Timings.GetPointAt(1000).SliderVelocity; got != 2.0 {
		t.Errorf("SliderVelocity = %v, want 2", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing header", "[General]\nMode: 0\n"},
		{"bad version", "osu file format vX\n"},
		{"empty file", ""},
		{"malformed timing", "osu file format v14\n[TimingPoints]\nabc,def\n"},
		{"malformed object", "osu file format v14\n[HitObjects]\n1,2\n"},
		{"unknown object type", "osu file format v14\n[HitObjects]\n0,0,0,64,0\n"},
		{"broken slider", "osu file format v14\n[HitObjects]\n0,0,0,2,0,L|10:0,0,-5\n"},
	}

	for _, tc := range cases {
		_, err := ParseBytes([]byte(tc.data))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%s: err = %v, want a ParseError", tc.name, err)
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%s: err %v is not a *ParseError", tc.name, err)
		}
	}
}

func TestParseSkipsUnknownSections(t *testing.T) {
	data := "osu file format v14\n[Colours]\nCombo1: 255,0,0\n[HitObjects]\n100,100,0,1,0\n"

	beatMap, err := ParseBytes([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if len(beatMap.HitObjects) != 1 {
		t.Errorf("got %d objects, want 1", len(beatMap.HitObjects))
	}
}
