// Query cache integration tests. These need Redis on top of MongoDB:
//
//	MONGO_URI=mongodb://localhost:27017 REDIS_ADDR=localhost:6379 \
//	  go test ./internal/service -run TestBlogService_QueryCache -v
//
// REDIS_ADDR defaults to localhost:6379; the tests are skipped when
// Redis is unreachable.
package service_test

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/config"
	"quill/internal/model/blog"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/ctxutil"
	"quill/internal/pkg/id"
	blogrepo "quill/internal/repository/blog"
	"quill/internal/service"
)

// requireRedis connects the query cache or skips the calling test
func requireRedis(t *testing.T) *cache.RedisCache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rc, err := cache.NewRedisCache(&config.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("Redis not available (%v), set REDIS_ADDR to run cache tests", err)
	}
	return rc
}

// insertDirect writes a published blog through the repository, bypassing
// the service and therefore the cache invalidation
func insertDirect(author ctxutil.Identity, title, category string) error {
	return testBlogRepo.Create(testCtx, &blog.Blog{
		ID:       id.New(),
		Title:    title,
		Content:  words(50),
		AuthorID: author.UserID,
		Tags:     []string{},
		Category: category,
		Status:   blog.StatusPublished,
		Likes:    []string{},
		ReadTime: 1,
	})
}

func TestBlogService_QueryCache(t *testing.T) {
	requireMongo(t)
	rc := requireRedis(t)
	defer func() {
		_ = rc.DeleteByPrefix(testCtx, cache.BlogListKeyPrefix)
		_ = rc.Close()
	}()

	svc := service.NewBlogService(testBlogRepo, testUserRepo, rc)

	Convey("The list query cache", t, func() {
		author, err := registerAuthor("cacher")
		So(err, ShouldBeNil)

		// A fresh category per run keys a fresh cache entry
		category := "cache-" + id.New()[:8]
		q := blogrepo.ListQuery{Category: category, Page: 1, Limit: 10}

		for i := 0; i < 2; i++ {
			_, err := svc.Create(testCtx, author.UserID, service.CreateInput{
				Title:    "Cached entry " + id.New()[:8],
				Content:  words(50),
				Category: category,
			})
			So(err, ShouldBeNil)
		}

		first, err := svc.List(testCtx, q)
		So(err, ShouldBeNil)
		So(first.Total, ShouldEqual, 2)

		Convey("a repeat of the same query is served from the cache", func() {
			// A write that sidesteps the service is invisible until the
			// entry expires or a service mutation invalidates it
			So(insertDirect(author, "Hidden entry", category), ShouldBeNil)

			cached, err := svc.List(testCtx, q)
			So(err, ShouldBeNil)
			So(cached.Total, ShouldEqual, 2)

			Convey("and the cached page decodes back to the same result", func() {
				So(len(cached.Blogs), ShouldEqual, len(first.Blogs))
				for i := range first.Blogs {
					So(cached.Blogs[i].ID, ShouldEqual, first.Blogs[i].ID)
					So(cached.Blogs[i].Title, ShouldEqual, first.Blogs[i].Title)
					So(cached.Blogs[i].AuthorID, ShouldEqual, first.Blogs[i].AuthorID)
				}
				resolved, ok := cached.Authors[author.UserID]
				So(ok, ShouldBeTrue)
				So(resolved.Username, ShouldEqual, author.Username)

				Convey("creating through the service invalidates the entry", func() {
					created, err := svc.Create(testCtx, author.UserID, service.CreateInput{
						Title:    "Invalidating entry",
						Content:  words(50),
						Category: category,
					})
					So(err, ShouldBeNil)

					// Fresh read now sees the sidestepped write too
					afterCreate, err := svc.List(testCtx, q)
					So(err, ShouldBeNil)
					So(afterCreate.Total, ShouldEqual, 4)

					Convey("so do update and delete", func() {
						// Re-prime, then check the update drops the entry
						So(insertDirect(author, "Hidden entry two", category), ShouldBeNil)
						stale, err := svc.List(testCtx, q)
						So(err, ShouldBeNil)
						So(stale.Total, ShouldEqual, 4)

						newTitle := "Invalidating entry renamed"
						_, err = svc.Update(testCtx, created.Blog.ID, author, service.UpdateInput{Title: &newTitle})
						So(err, ShouldBeNil)

						afterUpdate, err := svc.List(testCtx, q)
						So(err, ShouldBeNil)
						So(afterUpdate.Total, ShouldEqual, 5)

						err = svc.Delete(testCtx, created.Blog.ID, author)
						So(err, ShouldBeNil)

						afterDelete, err := svc.List(testCtx, q)
						So(err, ShouldBeNil)
						So(afterDelete.Total, ShouldEqual, 4)
					})
				})
			})
		})
	})
}
