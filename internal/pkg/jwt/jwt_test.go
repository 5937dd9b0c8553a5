package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("Bearer token round trip", t, func() {
		j := NewJWT("test-secret", time.Hour)

		token, err := j.GenerateToken("user-1", "alice", "author")
		So(err, ShouldBeNil)
		So(token, ShouldNotBeEmpty)

		Convey("a valid token yields its claims", func() {
			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "user-1")
			So(claims.Username, ShouldEqual, "alice")
			So(claims.Role, ShouldEqual, "author")
		})

		Convey("a token signed with another secret is rejected", func() {
			other := NewJWT("other-secret", time.Hour)
			_, err := other.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("garbage is rejected", func() {
			_, err := j.ValidateToken("not.a.token")
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("an expired token is reported as expired", func() {
			shortLived := NewJWT("test-secret", -time.Minute)
			expired, err := shortLived.GenerateToken("user-1", "alice", "author")
			So(err, ShouldBeNil)

			_, err = shortLived.ValidateToken(expired)
			So(err, ShouldEqual, ErrExpiredToken)
		})
	})
}
