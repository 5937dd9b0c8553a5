package http

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewPagination(t *testing.T) {
	Convey("Pagination envelope math", t, func() {
		Convey("a middle page has neighbors on both sides", func() {
			p := NewPagination(2, 10, 25)
			So(p.CurrentPage, ShouldEqual, 2)
			So(p.TotalPages, ShouldEqual, 3)
			So(p.TotalBlogs, ShouldEqual, 25)
			So(p.HasNext, ShouldBeTrue)
			So(p.HasPrev, ShouldBeTrue)
		})

		Convey("the first and last pages mark their missing neighbor", func() {
			first := NewPagination(1, 10, 25)
			So(first.HasPrev, ShouldBeFalse)
			So(first.HasNext, ShouldBeTrue)

			last := NewPagination(3, 10, 25)
			So(last.HasPrev, ShouldBeTrue)
			So(last.HasNext, ShouldBeFalse)
		})

		Convey("an empty result has zero pages and no neighbors", func() {
			p := NewPagination(1, 10, 0)
			So(p.TotalPages, ShouldEqual, 0)
			So(p.HasNext, ShouldBeFalse)
			So(p.HasPrev, ShouldBeFalse)
		})

		Convey("an exact multiple does not round up an extra page", func() {
			p := NewPagination(2, 10, 20)
			So(p.TotalPages, ShouldEqual, 2)
			So(p.HasNext, ShouldBeFalse)
		})
	})
}
