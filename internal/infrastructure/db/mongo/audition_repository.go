package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kalakar/casting-api/internal/core/domain"
)

var newestFirst = bson.D{{Key: "posted_date", Value: -1}, {Key: "_id", Value: -1}}

type AuditionRepository struct {
	col *mongo.Collection
}

func NewAuditionRepository(db *mongo.Database) *AuditionRepository {
	return &AuditionRepository{col: db.Collection(collectionAuditions)}
}

func (r *AuditionRepository) Create(ctx context.Context, a *domain.Audition) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, a)
	return storeErr("insert audition", err, nil)
}

func (r *AuditionRepository) FindByID(ctx context.Context, id string) (*domain.Audition, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Audition
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, storeErr("find audition", err, domain.ErrAuditionNotFound)
	}
	return &a, nil
}

// ListByDirector returns the director's postings, newest first.
func (r *AuditionRepository) ListByDirector(ctx context.Context, directorID string) ([]*domain.Audition, error) {
	return r.list(ctx, bson.M{"director_id": directorID})
}

// ListAll returns every posting, newest first.
func (r *AuditionRepository) ListAll(ctx context.Context) ([]*domain.Audition, error) {
	return r.list(ctx, bson.M{})
}

func (r *AuditionRepository) list(ctx context.Context, filter bson.M) ([]*domain.Audition, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, storeErr("list auditions", err, nil)
	}
	out, err := decodeAll[domain.Audition](ctx, cur)
	if err != nil {
		return nil, storeErr("decode auditions", err, nil)
	}
	return out, nil
}
