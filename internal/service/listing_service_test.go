package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rextj1/laragigs/internal/domain"
	"github.com/rextj1/laragigs/internal/repository"
	"github.com/rextj1/laragigs/internal/service"
)

// fakeListingRepo lets each test override just the calls it cares about.
type fakeListingRepo struct {
	createFn     func(ctx context.Context, listing *domain.Listing) (int64, error)
	updateFn     func(ctx context.Context, listing *domain.Listing) error
	deleteFn     func(ctx context.Context, id int64) error
	getFn        func(ctx context.Context, id int64) (*domain.Listing, error)
	listFn       func(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error)
	listByUserFn func(ctx context.Context, userID int64) ([]domain.Listing, error)
}

func (f *fakeListingRepo) Init(ctx context.Context) error { return nil }

func (f *fakeListingRepo) Create(ctx context.Context, listing *domain.Listing) (int64, error) {
	if f.createFn != nil {
		return f.createFn(ctx, listing)
	}
	listing.ID = 1
	return 1, nil
}

func (f *fakeListingRepo) Update(ctx context.Context, listing *domain.Listing) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, listing)
	}
	return nil
}

func (f *fakeListingRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeListingRepo) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &domain.Listing{ID: id}, nil
}

func (f *fakeListingRepo) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeListingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func validInput() service.ListingInput {
	return service.ListingInput{
		Title:       "Senior Go Developer",
		Company:     "Acme Corp",
		Location:    "Toronto",
		Website:     "https://acme.test",
		Email:       "jobs@acme.test",
		Tags:        "go, api, backend",
		Description: "Build and run backend services.",
	}
}

func TestListingCreateSetsOwnerAndLogo(t *testing.T) {
	var created *domain.Listing
	repo := &fakeListingRepo{
		createFn: func(ctx context.Context, listing *domain.Listing) (int64, error) {
			created = listing
			listing.ID = 7
			return 7, nil
		},
	}
	svc := service.NewListingService(repo)

	logo := "logos/abc.png"
	listing, err := svc.Create(context.Background(), 3, validInput(), &logo)
	require.NoError(t, err)
	require.Equal(t, int64(7), listing.ID)
	require.Equal(t, int64(3), created.UserID)
	require.Equal(t, "logos/abc.png", created.Logo)
}

func TestListingCreateWithoutLogo(t *testing.T) {
	repo := &fakeListingRepo{}
	svc := service.NewListingService(repo)

	listing, err := svc.Create(context.Background(), 3, validInput(), nil)
	require.NoError(t, err)
	require.Empty(t, listing.Logo)
}

func TestListingCreateValidation(t *testing.T) {
	svc := service.NewListingService(&fakeListingRepo{})

	tests := []struct {
		name   string
		mutate func(*service.ListingInput)
	}{
		{"missing title", func(in *service.ListingInput) { in.Title = "" }},
		{"missing company", func(in *service.ListingInput) { in.Company = "" }},
		{"missing location", func(in *service.ListingInput) { in.Location = "" }},
		{"missing website", func(in *service.ListingInput) { in.Website = "" }},
		{"missing email", func(in *service.ListingInput) { in.Email = "" }},
		{"missing tags", func(in *service.ListingInput) { in.Tags = "" }},
		{"missing description", func(in *service.ListingInput) { in.Description = "" }},
		{"whitespace only title", func(in *service.ListingInput) { in.Title = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), 1, in, nil)
			require.Error(t, err)
		})
	}
}

func TestListingUpdateKeepsLogoWhenNoneSupplied(t *testing.T) {
	var updated *domain.Listing
	repo := &fakeListingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Listing, error) {
			return &domain.Listing{ID: id, UserID: 1, Logo: "logos/keep.png"}, nil
		},
		updateFn: func(ctx context.Context, listing *domain.Listing) error {
			updated = listing
			return nil
		},
	}
	svc := service.NewListingService(repo)

	listing, replaced, err := svc.Update(context.Background(), 5, validInput(), nil)
	require.NoError(t, err)
	require.Empty(t, replaced)
	require.Equal(t, "logos/keep.png", listing.Logo)
	require.Equal(t, "logos/keep.png", updated.Logo)
}

func TestListingUpdateReplacesLogo(t *testing.T) {
	repo := &fakeListingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Listing, error) {
			return &domain.Listing{ID: id, UserID: 1, Logo: "logos/old.png"}, nil
		},
	}
	svc := service.NewListingService(repo)

	logo := "logos/new.png"
	listing, replaced, err := svc.Update(context.Background(), 5, validInput(), &logo)
	require.NoError(t, err)
	require.Equal(t, "logos/old.png", replaced)
	require.Equal(t, "logos/new.png", listing.Logo)
}

func TestListingUpdateSameLogoNotReplaced(t *testing.T) {
	repo := &fakeListingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Listing, error) {
			return &domain.Listing{ID: id, UserID: 1, Logo: "logos/same.png"}, nil
		},
	}
	svc := service.NewListingService(repo)

	logo := "logos/same.png"
	_, replaced, err := svc.Update(context.Background(), 5, validInput(), &logo)
	require.NoError(t, err)
	require.Empty(t, replaced)
}

func TestListingUpdateNotFound(t *testing.T) {
	repo := &fakeListingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Listing, error) {
			return nil, repository.ErrListingNotFound
		},
	}
	svc := service.NewListingService(repo)

	_, _, err := svc.Update(context.Background(), 5, validInput(), nil)
	require.ErrorIs(t, err, service.ErrListingNotFound)
}

func TestListingDeleteReturnsLogo(t *testing.T) {
	repo := &fakeListingRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Listing, error) {
			return &domain.Listing{ID: id, Logo: "logos/gone.png"}, nil
		},
	}
	svc := service.NewListingService(repo)

	logo, err := svc.Delete(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "logos/gone.png", logo)
}
