package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kalakar/casting-api/internal/core/domain"
)

type PromotionRepository struct {
	col *mongo.Collection
}

func NewPromotionRepository(db *mongo.Database) *PromotionRepository {
	return &PromotionRepository{col: db.Collection(collectionPromotions)}
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return storeErr("insert promotion", err, nil)
}

func (r *PromotionRepository) ListAll(ctx context.Context) ([]*domain.Promotion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, storeErr("list promotions", err, nil)
	}
	out, err := decodeAll[domain.Promotion](ctx, cur)
	if err != nil {
		return nil, storeErr("decode promotions", err, nil)
	}
	return out, nil
}
