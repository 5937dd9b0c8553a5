package service_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/model/auth"
	"quill/internal/pkg/id"
	"quill/internal/service"
)

// uniqueAccount returns a username/email pair that cannot collide with
// other tests in the run
func uniqueAccount(prefix string) (username, email string) {
	suffix := id.New()[:8]
	return prefix + "_" + suffix, prefix + "_" + suffix + "@example.com"
}

func TestAuthService_Register(t *testing.T) {
	requireMongo(t)

	Convey("Registering accounts", t, func() {
		Convey("an author registration keeps the requested role and returns a valid token", func() {
			username, email := uniqueAccount("author")
			user, token, err := testAuthSvc.Register(testCtx, username, email, "secret123", "author")
			So(err, ShouldBeNil)
			So(user.Role, ShouldEqual, auth.RoleAuthor)
			So(user.Password, ShouldNotEqual, "secret123") // stored hashed
			So(token, ShouldNotBeEmpty)

			claims, err := testAuthSvc.TokenUtil().ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, user.ID)
			So(claims.Role, ShouldEqual, "author")
		})

		Convey("an empty role defaults to reader", func() {
			username, email := uniqueAccount("reader")
			user, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "")
			So(err, ShouldBeNil)
			So(user.Role, ShouldEqual, auth.RoleReader)
		})

		Convey("a self-assigned admin role is downgraded to reader", func() {
			username, email := uniqueAccount("wannabe")
			user, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "admin")
			So(err, ShouldBeNil)
			So(user.Role, ShouldEqual, auth.RoleReader)
		})

		Convey("an unknown role is rejected", func() {
			username, email := uniqueAccount("badrole")
			_, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "superuser")
			So(service.IsValidation(err), ShouldBeTrue)
		})

		Convey("invalid fields are rejected", func() {
			_, email := uniqueAccount("short")
			_, _, err := testAuthSvc.Register(testCtx, "ab", email, "secret123", "")
			So(service.IsValidation(err), ShouldBeTrue)

			username, _ := uniqueAccount("bademail")
			_, _, err = testAuthSvc.Register(testCtx, username, "not-an-email", "secret123", "")
			So(service.IsValidation(err), ShouldBeTrue)

			username, email = uniqueAccount("shortpw")
			_, _, err = testAuthSvc.Register(testCtx, username, email, "12345", "")
			So(service.IsValidation(err), ShouldBeTrue)
		})

		Convey("duplicate username and email are rejected", func() {
			username, email := uniqueAccount("dup")
			_, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "")
			So(err, ShouldBeNil)

			_, otherEmail := uniqueAccount("dup2")
			_, _, err = testAuthSvc.Register(testCtx, username, otherEmail, "secret123", "")
			So(err, ShouldEqual, service.ErrUsernameTaken)

			otherUsername, _ := uniqueAccount("dup3")
			_, _, err = testAuthSvc.Register(testCtx, otherUsername, email, "secret123", "")
			So(err, ShouldEqual, service.ErrEmailTaken)
		})
	})
}

func TestAuthService_Login(t *testing.T) {
	requireMongo(t)

	Convey("Logging in", t, func() {
		username, email := uniqueAccount("login")
		registered, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "author")
		So(err, ShouldBeNil)

		Convey("correct credentials return the user and a token", func() {
			user, token, err := testAuthSvc.Login(testCtx, email, "secret123")
			So(err, ShouldBeNil)
			So(user.ID, ShouldEqual, registered.ID)
			So(token, ShouldNotBeEmpty)
		})

		Convey("a wrong password is rejected without detail", func() {
			_, _, err := testAuthSvc.Login(testCtx, email, "wrongpass")
			So(err, ShouldEqual, service.ErrInvalidCredentials)
		})

		Convey("an unknown email is rejected with the same error", func() {
			_, _, err := testAuthSvc.Login(testCtx, "nobody@example.com", "secret123")
			So(err, ShouldEqual, service.ErrInvalidCredentials)
		})
	})
}

func TestAuthService_Profile(t *testing.T) {
	requireMongo(t)

	Convey("Managing the profile", t, func() {
		username, email := uniqueAccount("profile")
		user, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "author")
		So(err, ShouldBeNil)

		Convey("bio and username can be updated", func() {
			newName, _ := uniqueAccount("renamed")
			bio := "Writes about databases."
			updated, err := testAuthSvc.UpdateProfile(testCtx, user.ID, service.ProfileUpdate{
				Username: &newName,
				Bio:      &bio,
			})
			So(err, ShouldBeNil)
			So(updated.Username, ShouldEqual, newName)
			So(updated.Bio, ShouldEqual, bio)
		})

		Convey("taking another user's username is rejected", func() {
			otherName, otherEmail := uniqueAccount("taken")
			_, _, err := testAuthSvc.Register(testCtx, otherName, otherEmail, "secret123", "")
			So(err, ShouldBeNil)

			_, err = testAuthSvc.UpdateProfile(testCtx, user.ID, service.ProfileUpdate{Username: &otherName})
			So(err, ShouldEqual, service.ErrUsernameTaken)
		})

		Convey("an over-long bio is rejected", func() {
			long := make([]byte, 501)
			for i := range long {
				long[i] = 'a'
			}
			bio := string(long)
			_, err := testAuthSvc.UpdateProfile(testCtx, user.ID, service.ProfileUpdate{Bio: &bio})
			So(service.IsValidation(err), ShouldBeTrue)
		})
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	requireMongo(t)

	Convey("Changing the password", t, func() {
		username, email := uniqueAccount("chpass")
		user, _, err := testAuthSvc.Register(testCtx, username, email, "secret123", "")
		So(err, ShouldBeNil)

		Convey("the current password is required to match", func() {
			err := testAuthSvc.ChangePassword(testCtx, user.ID, "wrongpass", "newsecret")
			So(service.IsValidation(err), ShouldBeTrue)
		})

		Convey("a valid change takes effect on the next login", func() {
			err := testAuthSvc.ChangePassword(testCtx, user.ID, "secret123", "newsecret")
			So(err, ShouldBeNil)

			_, _, err = testAuthSvc.Login(testCtx, email, "secret123")
			So(err, ShouldEqual, service.ErrInvalidCredentials)

			_, _, err = testAuthSvc.Login(testCtx, email, "newsecret")
			So(err, ShouldBeNil)
		})
	})
}
