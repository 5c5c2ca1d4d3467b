package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/validation"
)

const minPasswordLength = 6

// CredentialStore is the email/password identity provider. It keeps bcrypt
// hashes apart from profile data and issues the identity used as user id.
type CredentialStore struct {
	col  *mongo.Collection
	cost int
	now  func() time.Time
}

type credential struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{
		col:  db.Collection(collectionCredentials),
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
}

// CreateAccount registers email with a hashed password and returns its identity.
func (s *CredentialStore) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if !validation.IsEmail(email) {
		return "", domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return "", domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrWeakPassword
		}
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateAccount
		}
		return "", domain.Persistence("insert credential", err)
	}
	return doc.ID, nil
}

// Authenticate returns the identity for a matching email and password.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c credential
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&c); err != nil {
		return "", storeErr("find credential", err, domain.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return c.ID, nil
}

// DeleteAccount removes the credential issued for identity.
func (s *CredentialStore) DeleteAccount(ctx context.Context, identity string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.DeleteOne(ctx, bson.M{"_id": identity})
	return storeErr("delete credential", err, nil)
}
