package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kalakar/casting-api/internal/core/domain"
)

type PortfolioRepository struct {
	col *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{col: db.Collection(collectionPortfolios)}
}

// Upsert writes the owner's portfolio in one round trip, inserting it when
// absent. The document id is the owner id, so there is never more than one.
func (r *PortfolioRepository) Upsert(ctx context.Context, p *domain.Portfolio) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := portfolioUpsert(p)
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return storeErr("upsert portfolio", err, nil)
}

// portfolioUpsert keys the write on the owner id alone, so the upsert can
// only ever touch one document.
func portfolioUpsert(p *domain.Portfolio) (filter, update bson.M) {
	filter = bson.M{"_id": p.OwnerID}
	update = bson.M{"$set": bson.M{
		"title":      p.Title,
		"bio":        p.Bio,
		"experience": p.Experience,
		"skills":     p.Skills,
		"saved_date": p.SavedDate,
		"updated_at": p.UpdatedAt,
	}}
	return filter, update
}

func (r *PortfolioRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Portfolio
	if err := r.col.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&p); err != nil {
		return nil, storeErr("find portfolio", err, domain.ErrPortfolioNotFound)
	}
	return &p, nil
}
