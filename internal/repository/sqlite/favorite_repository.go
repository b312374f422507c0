package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"propertyhub/internal/domain"
	"propertyhub/internal/repository"
)

// The unique index is the authoritative guard against duplicate favorites;
// concurrent identical adds race on the insert, not on a pre-check.
const createFavoritesTable = `
CREATE TABLE IF NOT EXISTS favorites (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	property_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE(user_id, property_id)
);
`

const createFavoritesUserIndex = `
CREATE INDEX IF NOT EXISTS idx_favorites_user_id ON favorites(user_id);
`

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFavoritesTable); err != nil {
		return fmt.Errorf("create favorites table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createFavoritesUserIndex); err != nil {
		return fmt.Errorf("create favorites user index: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Create(ctx context.Context, favorite *domain.Favorite) error {
	favorite.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO favorites (id, user_id, property_id, created_at)
VALUES (?, ?, ?, ?)`,
		favorite.ID,
		favorite.UserID,
		favorite.PropertyID,
		favorite.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("insert favorite: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id, userID string) error {
	// No rows affected is fine: remove is idempotent by absence.
	_, err := r.db.ExecContext(ctx, `
DELETE FROM favorites
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListWithProperties(ctx context.Context, userID string) ([]domain.FavoriteEntry, error) {
	// The inner join drops favorites whose property has been deleted.
	rows, err := r.db.QueryContext(ctx, `
SELECT f.id, p.id, p.user_id, p.title, p.description, p.price, p.location, p.type, p.category, p.bedrooms, p.bathrooms, p.size, p.images, p.features, p.created_at, p.updated_at
FROM favorites f
INNER JOIN properties p ON p.id = f.property_id
WHERE f.user_id = ?
ORDER BY f.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var entries []domain.FavoriteEntry
	for rows.Next() {
		var (
			entry       domain.FavoriteEntry
			listingType string
			category    string
			images      string
			features    string
		)
		if err := rows.Scan(
			&entry.FavoriteID,
			&entry.Property.ID,
			&entry.Property.UserID,
			&entry.Property.Title,
			&entry.Property.Description,
			&entry.Property.Price,
			&entry.Property.Location,
			&listingType,
			&category,
			&entry.Property.Bedrooms,
			&entry.Property.Bathrooms,
			&entry.Property.Size,
			&images,
			&features,
			&entry.Property.CreatedAt,
			&entry.Property.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}

		entry.Property.Type = domain.ListingType(listingType)
		entry.Property.Category = domain.Category(category)
		if entry.Property.Images, err = decodeStrings(images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
		if entry.Property.Features, err = decodeStrings(features); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
