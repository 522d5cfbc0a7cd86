package models

import "time"

// ItemStatus is the lifecycle state of a listed item.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusSold      ItemStatus = "sold"
	ItemStatusWithdrawn ItemStatus = "withdrawn"
)

// Valid reports whether s is one of the known statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusPending, ItemStatusSold, ItemStatusWithdrawn:
		return true
	}
	return false
}

// ItemCategories lists the categories an item can be filed under.
var ItemCategories = []string{
	"Electronics",
	"Furniture",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports & Recreation",
	"Tools",
	"Art & Crafts",
	"Food & Beverages",
	"Other",
}

// ItemOwner is the subset of the owning user embedded into item responses.
type ItemOwner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Item is a listing offered on the marketplace.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Location    string     `json:"location,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Status      ItemStatus `json:"status"`

	// OwnerID references the user who created the listing.
	OwnerID string `json:"ownerId"`

	// Owner is populated on reads that join the users table.
	Owner *ItemOwner `json:"owner,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}

// ItemFilter narrows item listings. Zero-valued fields are ignored.
type ItemFilter struct {
	OwnerID  string
	Category string
	Status   ItemStatus

	// Search matches title or description, case-insensitively.
	Search string
}
