package blog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Blog article entity. Author and likes hold user IDs; they are resolved
// to user summaries at response-shaping time.
type Blog struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`     // 5-150 chars
	Content   string    `bson:"content" json:"content"` // at least 20 chars, lightweight markup
	Excerpt   string    `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	AuthorID  string    `bson:"author" json:"author_id"` // immutable after creation
	Tags      []string  `bson:"tags" json:"tags"`
	Category  string    `bson:"category" json:"category"`
	Status    Status    `bson:"status" json:"status"`
	Featured  bool      `bson:"featured" json:"featured"`
	Likes     []string  `bson:"likes" json:"likes"` // user IDs, each at most once
	Views     int64     `bson:"views" json:"views"`
	ReadTime  int       `bson:"read_time" json:"readTime"` // minutes, derived from content
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// LikeCount is derived from the likes list and never persisted separately
func (b *Blog) LikeCount() int {
	return len(b.Likes)
}

// IsLikedBy reports whether the user currently likes the blog
func (b *Blog) IsLikedBy(userID string) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Status of a blog. Transitions are unrestricted.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// IsValid checks whether the status is one of the known values
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// String returns the status string
func (s Status) String() string {
	return string(s)
}

// DefaultCategory applied when no category is supplied at creation
const DefaultCategory = "general"

// Collection returns the collection name
func (b *Blog) Collection() string {
	return "blogs"
}

// EnsureIndexes creates the blogs indexes: the text index backing search
// plus the compound indexes the list queries sort on
func (b *Blog) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(b.Collection())

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				bson.E{Key: "title", Value: "text"},
				bson.E{Key: "content", Value: "text"},
				bson.E{Key: "tags", Value: "text"},
			},
			Options: options.Index().SetName("idx_text_search"),
		},
		{
			Keys:    bson.D{bson.E{Key: "author", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_author_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "status", Value: 1}, bson.E{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_status_created"),
		},
		{
			Keys:    bson.D{bson.E{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	}

	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
