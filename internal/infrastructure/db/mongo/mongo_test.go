package mongo

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kalakar/casting-api/internal/core/domain"
)

func TestStoreErr(t *testing.T) {
	if storeErr("op", nil, domain.ErrUserNotFound) != nil {
		t.Fatal("nil error should stay nil")
	}

	err := storeErr("find user", fmt.Errorf("decode: %w", mongo.ErrNoDocuments), domain.ErrUserNotFound)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	err = storeErr("delete credential", mongo.ErrNoDocuments, nil)
	if !domain.IsPersistence(err) {
		t.Fatalf("without a not-found error the failure is a persistence error, got %v", err)
	}

	err = storeErr("insert audition", errors.New("server selection timeout"), nil)
	if !domain.IsPersistence(err) || err.Error() != "insert audition: server selection timeout" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCredentialStore_RejectsBeforeStoreAccess(t *testing.T) {
	s := &CredentialStore{}

	if _, err := s.CreateAccount(t.Context(), "not-an-email", "secret1"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := s.CreateAccount(t.Context(), "asha@example.com", "12345"); !errors.Is(err, domain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
