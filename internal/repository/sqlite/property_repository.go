package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"propertyhub/internal/domain"
	"propertyhub/internal/repository"
)

const createPropertiesTable = `
CREATE TABLE IF NOT EXISTS properties (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price REAL NOT NULL DEFAULT 0,
	location TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	category TEXT NOT NULL,
	bedrooms INTEGER NOT NULL DEFAULT 0,
	bathrooms INTEGER NOT NULL DEFAULT 0,
	size REAL NOT NULL DEFAULT 0,
	images TEXT NOT NULL DEFAULT '[]',
	features TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createPropertiesOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_properties_user_id ON properties(user_id);
`

type PropertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPropertiesTable); err != nil {
		return fmt.Errorf("create properties table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createPropertiesOwnerIndex); err != nil {
		return fmt.Errorf("create properties owner index: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	images, err := encodeStrings(property.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	features, err := encodeStrings(property.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO properties (id, user_id, title, description, price, location, type, category, bedrooms, bathrooms, size, images, features, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		property.ID,
		property.UserID,
		property.Title,
		property.Description,
		property.Price,
		property.Location,
		string(property.Type),
		string(property.Category),
		property.Bedrooms,
		property.Bathrooms,
		property.Size,
		images,
		features,
		property.CreatedAt,
		property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Get(ctx context.Context, id string) (*domain.Property, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, title, description, price, location, type, category, bedrooms, bathrooms, size, images, features, created_at, updated_at
FROM properties
WHERE id = ?`,
		id,
	)
	return scanProperty(row)
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, title, description, price, location, type, category, bedrooms, bathrooms, size, images, features, created_at, updated_at
FROM properties
WHERE user_id = ?
ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) AppendImage(ctx context.Context, id, imageKey string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRowContext(ctx, `SELECT images FROM properties WHERE id = ?`, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("property: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("read property images: %w", err)
	}

	images, err := decodeStrings(raw)
	if err != nil {
		return fmt.Errorf("decode images: %w", err)
	}
	images = append(images, imageKey)
	encoded, err := encodeStrings(images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE properties
SET images = ?, updated_at = ?
WHERE id = ?`,
		encoded,
		time.Now().UTC(),
		id,
	); err != nil {
		return fmt.Errorf("update property images: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit image append: %w", err)
	}
	return nil
}

func scanProperty(scanner interface {
	Scan(dest ...any) error
}) (*domain.Property, error) {
	var (
		property    domain.Property
		listingType string
		category    string
		images      string
		features    string
	)
	if err := scanner.Scan(
		&property.ID,
		&property.UserID,
		&property.Title,
		&property.Description,
		&property.Price,
		&property.Location,
		&listingType,
		&category,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.Size,
		&images,
		&features,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}

	property.Type = domain.ListingType(listingType)
	property.Category = domain.Category(category)

	var err error
	if property.Images, err = decodeStrings(images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if property.Features, err = decodeStrings(features); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	return &property, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
