package store_test

import (
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/arisena/gopp/app/beatmap/difficulty"
	"github.com/arisena/gopp/app/calc"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/store"
)

func testResult(stars, pp float64) calc.Result {
	res := calc.Result{
		Mode: api.Osu,
		Mods: difficulty.Hidden,
	}
	res.Attributes.Total = stars
	res.PP.Total = pp

	return res
}

func TestStore(t *testing.T) {
	convey.Convey("Given an open store", t, func() {
		st, err := store.Open(filepath.Join(t.TempDir(), "gopp.db"))

		convey.So(err, convey.ShouldBeNil)

		defer st.Close()

		convey.Convey("Saving a result makes it loadable by hash", func() {
			sum := store.HashBeatmap([]byte("osu file format v14"))

			id, err := st.Save(sum, testResult(5.5, 321.5))

			convey.So(err, convey.ShouldBeNil)
			convey.So(id, convey.ShouldNotBeEmpty)

			entries, err := st.Load(sum)

			convey.So(err, convey.ShouldBeNil)
			convey.So(entries, convey.ShouldHaveLength, 1)
			convey.So(entries[0].ID, convey.ShouldEqual, id)
			convey.So(entries[0].Sum, convey.ShouldEqual, sum)
			convey.So(entries[0].Mode, convey.ShouldEqual, "osu")
			convey.So(entries[0].Mods, convey.ShouldEqual, "HD")
			convey.So(entries[0].Stars, convey.ShouldAlmostEqual, 5.5)
			convey.So(entries[0].PP, convey.ShouldAlmostEqual, 321.5)
		})

		convey.Convey("Loading an unknown hash yields no entries", func() {
			entries, err := st.Load(store.HashBeatmap([]byte("something else")))

			convey.So(err, convey.ShouldBeNil)
			convey.So(entries, convey.ShouldBeEmpty)
		})

		convey.Convey("Different content hashes to different sums", func() {
			convey.So(store.HashBeatmap([]byte("a")), convey.ShouldNotEqual, store.HashBeatmap([]byte("b")))
		})
	})
}
