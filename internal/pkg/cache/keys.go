package cache

import (
	"fmt"
	"strings"
	"time"
)

// Key layout for the blog query cache. List results are keyed by the
// exact query-parameter tuple so that every distinct page/filter
// combination caches independently; a mutation invalidates the whole
// list prefix. Detail reads are never cached because fetching a blog
// has a view-count side effect.
const (
	BlogListKeyPrefix = "blogs:list:"

	BlogListTTL = 5 * time.Minute
)

// BlogListKey builds the cache key for a list query
func BlogListKey(page, limit int, search, category, author string, tags []string, sort string) string {
	return fmt.Sprintf("%spage=%d&limit=%d&search=%s&category=%s&author=%s&tags=%s&sort=%s",
		BlogListKeyPrefix, page, limit, search, category, author, strings.Join(tags, ","), sort)
}

