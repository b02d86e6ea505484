package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rextj1/laragigs/internal/domain"
	"github.com/rextj1/laragigs/internal/repository"
)

// ErrListingNotFound mirrors the repository sentinel for callers of this package.
var ErrListingNotFound = repository.ErrListingNotFound

// ListingInput carries the text fields of a create or update request.
type ListingInput struct {
	Title       string
	Company     string
	Location    string
	Website     string
	Email       string
	Tags        string
	Description string
}

// ListingService coordinates listing level operations backed by repositories.
//
// The logo argument on Create and Update is a three-state value: nil means no
// file was supplied (keep whatever is stored), a non-nil pointer carries the
// stored relative path of a freshly uploaded file.
type ListingService interface {
	Create(ctx context.Context, userID int64, in ListingInput, logo *string) (*domain.Listing, error)
	Update(ctx context.Context, id int64, in ListingInput, logo *string) (listing *domain.Listing, replacedLogo string, err error)
	Delete(ctx context.Context, id int64) (removedLogo string, err error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error)
}

type listingService struct {
	listings repository.ListingRepository
}

func NewListingService(listings repository.ListingRepository) ListingService {
	return &listingService{listings: listings}
}

func (s *listingService) Create(ctx context.Context, userID int64, in ListingInput, logo *string) (*domain.Listing, error) {
	if userID <= 0 {
		return nil, errors.New("owner is required")
	}
	in = trimInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		UserID:      userID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Website:     in.Website,
		Email:       in.Email,
		Tags:        in.Tags,
		Description: in.Description,
	}
	if logo != nil {
		listing.Logo = *logo
	}

	if _, err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Update(ctx context.Context, id int64, in ListingInput, logo *string) (*domain.Listing, string, error) {
	in = trimInput(in)
	if err := validateInput(in); err != nil {
		return nil, "", err
	}

	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	listing.Title = in.Title
	listing.Company = in.Company
	listing.Location = in.Location
	listing.Website = in.Website
	listing.Email = in.Email
	listing.Tags = in.Tags
	listing.Description = in.Description

	var replacedLogo string
	if logo != nil {
		if listing.Logo != "" && listing.Logo != *logo {
			replacedLogo = listing.Logo
		}
		listing.Logo = *logo
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, "", err
	}
	return listing, replacedLogo, nil
}

func (s *listingService) Delete(ctx context.Context, id int64) (string, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return "", err
	}
	return listing.Logo, nil
}

func (s *listingService) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.listings.Get(ctx, id)
}

func (s *listingService) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	return s.listings.List(ctx, filter)
}

func (s *listingService) ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error) {
	return s.listings.ListByUser(ctx, userID)
}

func trimInput(in ListingInput) ListingInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Website = strings.TrimSpace(in.Website)
	in.Email = strings.TrimSpace(in.Email)
	in.Tags = strings.TrimSpace(in.Tags)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func validateInput(in ListingInput) error {
	switch {
	case in.Title == "":
		return errors.New("title is required")
	case in.Company == "":
		return errors.New("company is required")
	case in.Location == "":
		return errors.New("location is required")
	case in.Website == "":
		return errors.New("website is required")
	case in.Email == "":
		return errors.New("email is required")
	case in.Tags == "":
		return errors.New("tags are required")
	case in.Description == "":
		return errors.New("description is required")
	}
	return nil
}
