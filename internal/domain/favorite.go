package domain

import "time"

// Favorite links one user to one property they marked. The
// (UserID, PropertyID) pair is unique across all favorites.
type Favorite struct {
	ID         string
	UserID     string
	PropertyID string
	CreatedAt  time.Time
}

// FavoriteEntry is the denormalized read view of a favorite joined with the
// property it references.
type FavoriteEntry struct {
	FavoriteID string
	Property   Property
}
