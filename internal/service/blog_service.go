package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"quill/internal/model/auth"
	"quill/internal/model/blog"
	"quill/internal/pkg/blogtext"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/ctxutil"
	"quill/internal/pkg/id"
	authrepo "quill/internal/repository/auth"
	blogrepo "quill/internal/repository/blog"
)

// BlogService implements the blog listing/query and like-toggle flows
type BlogService struct {
	blogRepo *blogrepo.BlogRepo
	userRepo *authrepo.UserRepo
	cache    *cache.RedisCache // query cache, may be nil
}

// NewBlogService creates the blog service
func NewBlogService(blogRepo *blogrepo.BlogRepo, userRepo *authrepo.UserRepo, queryCache *cache.RedisCache) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		userRepo: userRepo,
		cache:    queryCache,
	}
}

// ListResult is one page of blog summaries with their authors resolved
type ListResult struct {
	Blogs   []*blog.Blog
	Authors map[string]auth.Summary // keyed by user ID
	Total   int64
}

// DetailResult is a full blog with author and likes resolved to user
// summaries
type DetailResult struct {
	Blog    *blog.Blog
	Author  *auth.Summary
	LikedBy []auth.Summary
}

// List returns one page of published blogs matching the query. Results
// are served from the query cache when fresh; the cache key is the exact
// query-parameter tuple.
func (s *BlogService) List(ctx context.Context, q blogrepo.ListQuery) (*ListResult, error) {
	q.Status = blog.StatusPublished

	key := cache.BlogListKey(q.Page, q.Limit, q.Search, q.Category, q.AuthorID, q.Tags, q.Sort)
	if s.cache != nil {
		var cached ListResult
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Msg("query cache read failed")
		}
	}

	result, err := s.list(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, cache.BlogListTTL); err != nil {
			log.Warn().Err(err).Msg("query cache write failed")
		}
	}

	return result, nil
}

// ListMine returns one page of the caller's own blogs regardless of
// status. Never cached: the result set is per-user and includes drafts.
func (s *BlogService) ListMine(ctx context.Context, userID string, page, limit int) (*ListResult, error) {
	return s.list(ctx, blogrepo.ListQuery{
		AuthorID: userID,
		Sort:     blogrepo.SortNewest,
		Page:     page,
		Limit:    limit,
	})
}

// list executes the query and resolves author summaries
func (s *BlogService) list(ctx context.Context, q blogrepo.ListQuery) (*ListResult, error) {
	blogs, total, err := s.blogRepo.List(ctx, q)
	if err != nil {
		log.Error().Err(err).Msg("failed to list blogs")
		return nil, errors.New("failed to fetch blogs")
	}

	authorIDs := make([]string, 0, len(blogs))
	seen := make(map[string]struct{})
	for _, b := range blogs {
		if _, ok := seen[b.AuthorID]; !ok {
			seen[b.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, b.AuthorID)
		}
	}

	authors := make(map[string]auth.Summary, len(authorIDs))
	if len(authorIDs) > 0 {
		users, err := s.userRepo.FindByIDs(ctx, authorIDs)
		if err != nil {
			log.Error().Err(err).Msg("failed to resolve blog authors")
			return nil, errors.New("failed to fetch blogs")
		}
		for _, u := range users {
			authors[u.ID] = u.ToSummary()
		}
	}

	return &ListResult{Blogs: blogs, Authors: authors, Total: total}, nil
}

// Get returns a full blog with author and likes resolved. Every call
// increments the view counter; repeated reads by the same viewer all
// count. Detail responses are never served from the cache because of
// that side effect.
func (s *BlogService) Get(ctx context.Context, blogID string) (*DetailResult, error) {
	b, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to load blog")
		return nil, errors.New("failed to fetch blog")
	}

	if err := s.blogRepo.IncrementViews(ctx, blogID); err != nil {
		// A lost view count should not fail the read
		log.Warn().Err(err).Str("blog_id", blogID).Msg("failed to increment views")
	} else {
		b.Views++
	}

	return s.resolve(ctx, b)
}

// resolve loads the author and like-list user summaries for a blog
func (s *BlogService) resolve(ctx context.Context, b *blog.Blog) (*DetailResult, error) {
	detail := &DetailResult{Blog: b}

	if author, err := s.userRepo.FindByID(ctx, b.AuthorID); err == nil {
		summary := author.ToSummary()
		detail.Author = &summary
	}

	if len(b.Likes) > 0 {
		likers, err := s.userRepo.FindByIDs(ctx, b.Likes)
		if err != nil {
			log.Warn().Err(err).Str("blog_id", b.ID).Msg("failed to resolve likers")
		}
		for _, u := range likers {
			detail.LikedBy = append(detail.LikedBy, u.ToSummary())
		}
	}

	return detail, nil
}

// CreateInput carries the blog creation fields. Tags is the raw
// comma-separated string from the request.
type CreateInput struct {
	Title    string
	Content  string
	Excerpt  string
	Tags     string
	Category string
	Status   string
}

// Create validates and stores a new blog for the given author, deriving
// excerpt and read time, and returns it with the author resolved
func (s *BlogService) Create(ctx context.Context, authorID string, in CreateInput) (*DetailResult, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}
	if err := validateExcerpt(in.Excerpt); err != nil {
		return nil, err
	}
	if in.Status != "" {
		if err := validateStatus(in.Status); err != nil {
			return nil, err
		}
	}

	b := &blog.Blog{
		ID:       id.New(),
		Title:    in.Title,
		Content:  in.Content,
		Excerpt:  in.Excerpt,
		AuthorID: authorID,
		Tags:     blogtext.ParseTags(in.Tags),
		Category: in.Category,
		Status:   blog.Status(in.Status),
		Likes:    []string{},
		ReadTime: blogtext.ReadTime(in.Content),
	}
	if b.Excerpt == "" {
		b.Excerpt = blogtext.Excerpt(in.Content)
	}
	if b.Category == "" {
		b.Category = blog.DefaultCategory
	}
	if b.Status == "" {
		b.Status = blog.StatusPublished
	}

	if err := s.blogRepo.Create(ctx, b); err != nil {
		log.Error().Err(err).Msg("failed to create blog")
		return nil, errors.New("failed to create blog")
	}

	s.invalidateLists(ctx)

	return s.resolve(ctx, b)
}

// UpdateInput carries the optional update fields; nil means unchanged.
// Tags, when present, replaces the existing tag list wholesale.
type UpdateInput struct {
	Title    *string
	Content  *string
	Excerpt  *string
	Tags     *string
	Category *string
	Status   *string
}

// Update applies a partial update to a blog. Only the blog's author or
// an admin may update; the author reference itself is immutable.
func (s *BlogService) Update(ctx context.Context, blogID string, caller ctxutil.Identity, in UpdateInput) (*DetailResult, error) {
	b, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to load blog")
		return nil, errors.New("failed to update blog")
	}
	if err := checkOwnership(b, caller); err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		set["title"] = *in.Title
	}
	if in.Content != nil {
		if err := validateContent(*in.Content); err != nil {
			return nil, err
		}
		set["content"] = *in.Content
		set["read_time"] = blogtext.ReadTime(*in.Content)
	}
	if in.Excerpt != nil {
		if err := validateExcerpt(*in.Excerpt); err != nil {
			return nil, err
		}
		set["excerpt"] = *in.Excerpt
	}
	if in.Tags != nil {
		set["tags"] = blogtext.ParseTags(*in.Tags)
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Status != nil {
		if err := validateStatus(*in.Status); err != nil {
			return nil, err
		}
		set["status"] = *in.Status
	}

	updated, err := s.blogRepo.Update(ctx, blogID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBlogNotFound
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to update blog")
		return nil, errors.New("failed to update blog")
	}

	s.invalidateLists(ctx)

	return s.resolve(ctx, updated)
}

// Delete hard-deletes a blog. Only the blog's author or an admin may
// delete; a missing id reports not-found rather than silently succeeding.
func (s *BlogService) Delete(ctx context.Context, blogID string, caller ctxutil.Identity) error {
	b, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBlogNotFound
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to load blog")
		return errors.New("failed to delete blog")
	}
	if err := checkOwnership(b, caller); err != nil {
		return err
	}

	if err := s.blogRepo.Delete(ctx, blogID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBlogNotFound
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to delete blog")
		return errors.New("failed to delete blog")
	}

	s.invalidateLists(ctx)

	return nil
}

// ToggleLike flips the caller's like on a blog and returns the new count
// and liked state. The likes array is read, toggled in memory and written
// back whole; concurrent toggles on the same blog are last-write-wins.
func (s *BlogService) ToggleLike(ctx context.Context, blogID, userID string) (likeCount int, isLiked bool, err error) {
	b, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, ErrBlogNotFound
		}
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to load blog")
		return 0, false, errors.New("failed to toggle like")
	}

	likes := make([]string, 0, len(b.Likes)+1)
	wasLiked := false
	for _, uid := range b.Likes {
		if uid == userID {
			wasLiked = true
			continue
		}
		likes = append(likes, uid)
	}
	if !wasLiked {
		likes = append(likes, userID)
	}

	if err := s.blogRepo.SetLikes(ctx, blogID, likes); err != nil {
		log.Error().Err(err).Str("blog_id", blogID).Msg("failed to persist likes")
		return 0, false, errors.New("failed to toggle like")
	}

	return len(likes), !wasLiked, nil
}

// checkOwnership permits the blog's author or an admin
func checkOwnership(b *blog.Blog, caller ctxutil.Identity) error {
	if b.AuthorID == caller.UserID || caller.Role == string(auth.RoleAdmin) {
		return nil
	}
	return ErrForbidden
}

// invalidateLists drops every cached list page after a mutation so the
// next read re-fetches. Best-effort: a cache failure only logs.
func (s *BlogService) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, cache.BlogListKeyPrefix); err != nil {
		log.Warn().Err(err).Msg("query cache invalidation failed")
	}
}
