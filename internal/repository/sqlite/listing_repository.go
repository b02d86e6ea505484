package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rextj1/laragigs/internal/domain"
	"github.com/rextj1/laragigs/internal/repository"
)

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL,
	website TEXT NOT NULL,
	email TEXT NOT NULL,
	tags TEXT NOT NULL,
	description TEXT NOT NULL,
	logo TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_listings_user_id ON listings(user_id);
`

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingsTable); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (int64, error) {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO listings (user_id, title, company, location, website, email, tags, description, logo, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.UserID,
		listing.Title,
		listing.Company,
		listing.Location,
		listing.Website,
		listing.Email,
		listing.Tags,
		listing.Description,
		nullableLogo(listing.Logo),
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert listing: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("listing last insert id: %w", err)
	}
	listing.ID = id
	return id, nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	listing.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE listings
SET title=?, company=?, location=?, website=?, email=?, tags=?, description=?, logo=?, updated_at=?
WHERE id=?`,
		listing.Title,
		listing.Company,
		listing.Location,
		listing.Website,
		listing.Email,
		listing.Tags,
		listing.Description,
		nullableLogo(listing.Logo),
		listing.UpdatedAt,
		listing.ID,
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update listing rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete listing rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, title, company, location, website, email, tags, description, logo, created_at, updated_at
FROM listings
WHERE id = ?`,
		id,
	)
	return scanListing(row)
}

func (r *ListingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, error) {
	query := `
SELECT id, user_id, title, company, location, website, email, tags, description, logo, created_at, updated_at
FROM listings`
	var args []any
	if filter.Search != "" {
		query += "\nWHERE (title LIKE ? ESCAPE '\\' OR description LIKE ? ESCAPE '\\' OR tags LIKE ? ESCAPE '\\')"
		like := "%" + escapeLike(filter.Search) + "%"
		args = append(args, like, like, like)
	}
	query += "\nORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	listings, err := collectListings(rows)
	if err != nil {
		return nil, err
	}
	if filter.Tag != "" {
		listings = filterByTag(listings, filter.Tag)
	}
	return listings, nil
}

// filterByTag keeps listings whose comma-separated tags contain tag as a
// whole value, so "new york" matches "new york" but never "york".
func filterByTag(listings []domain.Listing, tag string) []domain.Listing {
	want := strings.TrimSpace(tag)
	var matched []domain.Listing
	for _, listing := range listings {
		for _, have := range listing.TagList() {
			if strings.EqualFold(have, want) {
				matched = append(matched, listing)
				break
			}
		}
	}
	return matched
}

// escapeLike quotes LIKE metacharacters so filter input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func (r *ListingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, title, company, location, website, email, tags, description, logo, created_at, updated_at
FROM listings
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query user listings: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

func collectListings(rows *sql.Rows) ([]domain.Listing, error) {
	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

func scanListing(row interface {
	Scan(dest ...any) error
}) (*domain.Listing, error) {
	var (
		listing domain.Listing
		logo    sql.NullString
	)
	if err := row.Scan(
		&listing.ID,
		&listing.UserID,
		&listing.Title,
		&listing.Company,
		&listing.Location,
		&listing.Website,
		&listing.Email,
		&listing.Tags,
		&listing.Description,
		&logo,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrListingNotFound
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	listing.Logo = logo.String
	return &listing, nil
}

// nullableLogo maps an empty logo path to NULL so the column stays nullable.
func nullableLogo(logo string) sql.NullString {
	return sql.NullString{String: logo, Valid: logo != ""}
}
