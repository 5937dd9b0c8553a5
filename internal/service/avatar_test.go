package service_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/pkg/storage/local"
	"quill/internal/service"
)

func TestAuthService_UploadAvatar(t *testing.T) {
	requireMongo(t)

	Convey("Avatar uploads", t, func() {
		dir := t.TempDir()
		store, err := local.NewLocalStorage(dir, "http://localhost:8080/uploads")
		So(err, ShouldBeNil)

		svc := service.NewAuthService(testUserRepo, "test-secret", time.Hour, store)

		username, email := uniqueAccount("avatar")
		user, _, err := svc.Register(testCtx, username, email, "secret123", "author")
		So(err, ShouldBeNil)

		avatarPath := func(ext string) string {
			return filepath.Join(dir, "avatars", user.ID+ext)
		}

		Convey("an upload stores the file and points the profile at it", func() {
			url, err := svc.UploadAvatar(testCtx, user.ID, "me.png", strings.NewReader("png-bytes"))
			So(err, ShouldBeNil)
			So(strings.HasSuffix(url, ".png"), ShouldBeTrue)

			_, err = os.Stat(avatarPath(".png"))
			So(err, ShouldBeNil)

			me, err := svc.GetMe(testCtx, user.ID)
			So(err, ShouldBeNil)
			So(me.Avatar, ShouldEqual, url)

			Convey("replacing it under a new extension removes the old object", func() {
				url, err := svc.UploadAvatar(testCtx, user.ID, "me.jpg", strings.NewReader("jpg-bytes"))
				So(err, ShouldBeNil)
				So(strings.HasSuffix(url, ".jpg"), ShouldBeTrue)

				_, err = os.Stat(avatarPath(".jpg"))
				So(err, ShouldBeNil)

				_, err = os.Stat(avatarPath(".png"))
				So(os.IsNotExist(err), ShouldBeTrue)

				me, err := svc.GetMe(testCtx, user.ID)
				So(err, ShouldBeNil)
				So(me.Avatar, ShouldEqual, url)
			})
		})

		Convey("an unsupported extension is rejected", func() {
			_, err := svc.UploadAvatar(testCtx, user.ID, "notes.txt", strings.NewReader("text"))
			So(service.IsValidation(err), ShouldBeTrue)
		})

		Convey("without a storage backend uploads report unavailable", func() {
			bare := service.NewAuthService(testUserRepo, "test-secret", time.Hour, nil)
			_, err := bare.UploadAvatar(testCtx, user.ID, "me.png", strings.NewReader("png-bytes"))
			So(err, ShouldEqual, service.ErrStorageUnavailable)
		})
	})
}
