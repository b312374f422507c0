package domain

import "time"

type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

func (t ListingType) Valid() bool {
	return t == ListingTypeSale || t == ListingTypeRent
}

type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
)

func (c Category) Valid() bool {
	return c == CategoryResidential || c == CategoryCommercial
}

// Property is a real-estate listing owned by exactly one user.
type Property struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Price       float64
	Location    string
	Type        ListingType
	Category    Category
	Bedrooms    int
	Bathrooms   int
	Size        float64
	Images      []string
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
