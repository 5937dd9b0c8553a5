// End-to-end API tests over the gin engine.
//
// Run with a local MongoDB:
//
//	MONGO_URI=mongodb://localhost:27017 go test ./internal/server -v
//
// Tests are skipped when MongoDB is unreachable.
package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"quill/internal/config"
	"quill/internal/server"
)

// newTestServer builds a server against the quill_api_test database with
// the cache and avatar storage disabled, or skips the test without MongoDB
func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 7080,
			Mode: "test",
		},
		// A separate database from the service-layer tests, which drop
		// their collections and may run in parallel with this package
		Mongo: config.MongoConfig{
			URI:      mongoURI,
			Database: "quill_api_test",
		},
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenExpiry: time.Hour,
		},
	}

	srv, err := server.New(cfg)
	if err != nil {
		t.Skipf("MongoDB not available (%v), set MONGO_URI to run API tests", err)
	}
	return srv
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(srv *server.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

// decode unmarshals a recorded JSON response body
func decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

func TestAPI_EndToEnd(t *testing.T) {
	srv := newTestServer(t)
	longContent := bytes.Repeat([]byte("words and more words. "), 20)

	Convey("The blog API end to end", t, func() {
		Convey("health endpoints answer without auth", func() {
			w := doJSON(srv, http.MethodGet, "/health", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("register, publish, read, like", func() {
			// Convey reruns this block for every leaf, so accounts get a
			// fresh suffix each time
			suffix := fmt.Sprintf("%d", time.Now().UnixNano())

			// Author account
			w := doJSON(srv, http.MethodPost, "/api/auth/register", "", map[string]string{
				"username": "e2e_author_" + suffix,
				"email":    "e2e_author_" + suffix + "@example.com",
				"password": "secret123",
				"role":     "author",
			})
			So(w.Code, ShouldEqual, http.StatusCreated)
			authorToken, _ := decode(w)["token"].(string)
			So(authorToken, ShouldNotBeEmpty)

			// Reader account
			w = doJSON(srv, http.MethodPost, "/api/auth/register", "", map[string]string{
				"username": "e2e_reader_" + suffix,
				"email":    "e2e_reader_" + suffix + "@example.com",
				"password": "secret123",
			})
			So(w.Code, ShouldEqual, http.StatusCreated)
			readerToken, _ := decode(w)["token"].(string)
			So(readerToken, ShouldNotBeEmpty)

			Convey("creating a blog requires the author role", func() {
				payload := map[string]string{
					"title":   "End to end post " + suffix,
					"content": string(longContent),
					"tags":    "E2E, Testing",
				}

				w := doJSON(srv, http.MethodPost, "/api/blogs", "", payload)
				So(w.Code, ShouldEqual, http.StatusUnauthorized)

				w = doJSON(srv, http.MethodPost, "/api/blogs", readerToken, payload)
				So(w.Code, ShouldEqual, http.StatusForbidden)

				w = doJSON(srv, http.MethodPost, "/api/blogs", authorToken, payload)
				So(w.Code, ShouldEqual, http.StatusCreated)

				created, _ := decode(w)["blog"].(map[string]interface{})
				So(created, ShouldNotBeNil)
				blogID, _ := created["id"].(string)
				So(blogID, ShouldNotBeEmpty)
				So(created["tags"], ShouldResemble, []interface{}{"e2e", "testing"})

				Convey("the blog is publicly listable and readable", func() {
					w := doJSON(srv, http.MethodGet, "/api/blogs?search=&page=1&limit=10", "", nil)
					So(w.Code, ShouldEqual, http.StatusOK)
					body := decode(w)
					So(body["blogs"], ShouldNotBeNil)
					So(body["pagination"], ShouldNotBeNil)

					w = doJSON(srv, http.MethodGet, "/api/blogs/"+blogID, "", nil)
					So(w.Code, ShouldEqual, http.StatusOK)
					detail, _ := decode(w)["blog"].(map[string]interface{})
					So(detail["title"], ShouldEqual, "End to end post "+suffix)
				})

				Convey("readers may not like, authors may", func() {
					w := doJSON(srv, http.MethodPost, "/api/blogs/"+blogID+"/like", readerToken, nil)
					So(w.Code, ShouldEqual, http.StatusForbidden)

					w = doJSON(srv, http.MethodPost, "/api/blogs/"+blogID+"/like", authorToken, nil)
					So(w.Code, ShouldEqual, http.StatusOK)
					body := decode(w)
					So(body["isLiked"], ShouldEqual, true)
					So(body["likeCount"], ShouldEqual, 1)
				})

				Convey("only the owner or an admin may delete", func() {
					w := doJSON(srv, http.MethodDelete, "/api/blogs/"+blogID, readerToken, nil)
					So(w.Code, ShouldEqual, http.StatusForbidden)

					w = doJSON(srv, http.MethodDelete, "/api/blogs/"+blogID, authorToken, nil)
					So(w.Code, ShouldEqual, http.StatusOK)

					w = doJSON(srv, http.MethodGet, "/api/blogs/"+blogID, "", nil)
					So(w.Code, ShouldEqual, http.StatusNotFound)
				})
			})

			Convey("the profile endpoints work with a bearer token", func() {
				w := doJSON(srv, http.MethodGet, "/api/auth/me", authorToken, nil)
				So(w.Code, ShouldEqual, http.StatusOK)
				user, _ := decode(w)["user"].(map[string]interface{})
				So(user["username"], ShouldEqual, "e2e_author_"+suffix)

				w = doJSON(srv, http.MethodPut, "/api/auth/profile", authorToken, map[string]string{
					"bio": "Integration test author.",
				})
				So(w.Code, ShouldEqual, http.StatusOK)
				user, _ = decode(w)["user"].(map[string]interface{})
				So(user["bio"], ShouldEqual, "Integration test author.")
			})
		})
	})
}
