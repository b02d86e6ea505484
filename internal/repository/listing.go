package repository

import (
	"context"
	"errors"

	"github.com/rextj1/laragigs/internal/domain"
)

// ErrListingNotFound is returned when no listing matches the given id.
var ErrListingNotFound = errors.New("listing not found")

// ListingFilter narrows the listings returned by List.
type ListingFilter struct {
	Tag    string
	Search string
}

// ListingRepository exposes persistence operations for Listing records.
type ListingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, listing *domain.Listing) (int64, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error)
}
