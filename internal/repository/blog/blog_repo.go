package blog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quill/internal/model/blog"
)

// Sort orders accepted by List
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
	SortTitle   = "title"
)

// ListQuery is the typed query intent the API surface passes down
type ListQuery struct {
	Search   string      // free-text search, OR-token match on title/content/tags
	Category string      // exact match
	AuthorID string      // exact match
	Tags     []string    // containment, any-of
	Status   blog.Status // empty means no status restriction
	Sort     string      // newest (default), oldest, popular, title
	Page     int         // 1-based
	Limit    int         // page size
}

// BlogRepo is the typed accessor over the blogs collection. It owns
// pagination and sort semantics; derived-field computation happens in the
// service layer at write time.
type BlogRepo struct {
	collection *mongo.Collection
}

// NewBlogRepo creates a blog repository
func NewBlogRepo(db *mongo.Database) *BlogRepo {
	var b blog.Blog
	return &BlogRepo{collection: db.Collection(b.Collection())}
}

// buildFilter translates a ListQuery into a store filter. All present
// conditions are ANDed together.
func buildFilter(q ListQuery) bson.M {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.AuthorID != "" {
		filter["author"] = q.AuthorID
	}
	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$in": q.Tags}
	}
	return filter
}

// sortSpec maps the sort name to store sort keys. Ties beyond the listed
// keys retain store-natural order.
func sortSpec(sort string) bson.D {
	switch sort {
	case SortOldest:
		return bson.D{bson.E{Key: "created_at", Value: 1}}
	case SortPopular:
		return bson.D{bson.E{Key: "views", Value: -1}, bson.E{Key: "likes", Value: -1}}
	case SortTitle:
		return bson.D{bson.E{Key: "title", Value: 1}}
	default:
		return bson.D{bson.E{Key: "created_at", Value: -1}}
	}
}

// List returns one page of blogs matching the query plus the total match
// count. The content field is omitted from results to keep list payloads
// small.
func (r *BlogRepo) List(ctx context.Context, q ListQuery) ([]*blog.Blog, int64, error) {
	filter := buildFilter(q)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortSpec(q.Sort)).
		SetSkip(int64(q.Page-1) * int64(q.Limit)).
		SetLimit(int64(q.Limit)).
		SetProjection(bson.M{"content": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var blogs []*blog.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// FindByID looks a blog up by ID
func (r *BlogRepo) FindByID(ctx context.Context, id string) (*blog.Blog, error) {
	var b blog.Blog
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new blog
func (r *BlogRepo) Create(ctx context.Context, b *blog.Blog) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, b)
	return err
}

// Update applies a partial update, bumps updated_at and returns the
// updated document. Returns mongo.ErrNoDocuments if the id is absent.
func (r *BlogRepo) Update(ctx context.Context, id string, set bson.M) (*blog.Blog, error) {
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b blog.Blog
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete hard-deletes a blog. Returns mongo.ErrNoDocuments if the id is
// absent so callers can report NotFound instead of silently succeeding.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetLikes persists the full likes array after an in-memory toggle.
// Concurrent toggles for the same blog are last-write-wins on the whole
// array.
func (r *BlogRepo) SetLikes(ctx context.Context, id string, likes []string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"likes":      likes,
			"updated_at": time.Now(),
		},
	})
	return err
}

// IncrementViews bumps the view counter by one. Every read counts; there
// is no per-viewer deduplication.
func (r *BlogRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"views": 1},
	})
	return err
}

// Count counts blogs matching the filter
func (r *BlogRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}
