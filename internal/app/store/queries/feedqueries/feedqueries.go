// Package feedqueries builds the paginated post feeds: global, per-group,
// per-author, and followed-authors.
//
// Every feed orders newest-first on (created_at, _id) and pages with
// paging.PageSize. Page numbers past the end clamp to the last page.
package feedqueries

import (
	"context"

	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Feed struct {
	posts *mongo.Collection
}

func New(db *mongo.Database) *Feed {
	return &Feed{posts: db.Collection("posts")}
}

// Global returns one page of all posts.
func (f *Feed) Global(ctx context.Context, page int) (paging.Page[models.Post], error) {
	return f.fetchPage(ctx, bson.M{}, page)
}

// ByGroup returns one page of a group's posts. The caller resolves the slug
// to a group first; an unknown slug is not-found before this runs.
func (f *Feed) ByGroup(ctx context.Context, groupID primitive.ObjectID, page int) (paging.Page[models.Post], error) {
	return f.fetchPage(ctx, bson.M{"group_id": groupID}, page)
}

// ByAuthor returns one page of an author's posts.
func (f *Feed) ByAuthor(ctx context.Context, authorID primitive.ObjectID, page int) (paging.Page[models.Post], error) {
	return f.fetchPage(ctx, bson.M{"author_id": authorID}, page)
}

// ByAuthors returns one page of posts from any of the given authors — the
// followed feed. A viewer following nobody gets an empty page, not an error.
func (f *Feed) ByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, page int) (paging.Page[models.Post], error) {
	if len(authorIDs) == 0 {
		return paging.Build([]models.Post{}, 1, 0), nil
	}
	return f.fetchPage(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, page)
}

// fetchPage counts the filtered set, clamps the requested page, and fetches
// exactly that page newest-first.
func (f *Feed) fetchPage(ctx context.Context, filter bson.M, page int) (paging.Page[models.Post], error) {
	total, err := f.posts.CountDocuments(ctx, filter)
	if err != nil {
		return paging.Page[models.Post]{}, err
	}
	page = paging.Clamp(page, total)

	opts := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetSkip(paging.Skip(page)).
		SetLimit(paging.Limit())

	cur, err := f.posts.Find(ctx, filter, opts)
	if err != nil {
		return paging.Page[models.Post]{}, err
	}
	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return paging.Page[models.Post]{}, err
	}

	return paging.Build(posts, page, total), nil
}
