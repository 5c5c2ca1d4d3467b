package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kalakar/casting-api/internal/core/domain"
)

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

// Create relies on the unique (audition_id, applicant_id) index.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyApplied
		}
		return domain.Persistence("insert application", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, storeErr("find application", err, domain.ErrApplicationNotFound)
	}
	return &a, nil
}

// ListByApplicant returns the applicant's applications, newest first.
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"applicant_id": applicantID})
}

// ListByAudition returns an audition's applications, newest first.
func (r *ApplicationRepository) ListByAudition(ctx context.Context, auditionID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"audition_id": auditionID})
}

func (r *ApplicationRepository) CountByAudition(ctx context.Context, auditionID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"audition_id": auditionID})
	if err != nil {
		return 0, storeErr("count applications", err, nil)
	}
	return n, nil
}

// UpdateStatus is a compare-and-set on the status field, so two concurrent
// decisions cannot both win.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, next domain.ApplicationStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := statusTransition(id, from, next, at)
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return storeErr("update application status", err, nil)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("update application status", err, nil)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return domain.ErrInvalidTransition
}

// statusTransition matches the application only while it still has status
// from.
func statusTransition(id string, from, next domain.ApplicationStatus, at time.Time) (filter, update bson.M) {
	filter = bson.M{"_id": id, "status": from}
	update = bson.M{"$set": bson.M{"status": next, "decided_at": at}}
	return filter, update
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "applied_date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list applications", err, nil)
	}
	out, err := decodeAll[domain.Application](ctx, cur)
	if err != nil {
		return nil, storeErr("decode applications", err, nil)
	}
	return out, nil
}
