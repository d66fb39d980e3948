package product

import "time"

// Product represents a catalog item owned by a seller. Line items snapshot
// its title, cost and type at add-time instead of joining it live.
type Product struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Sku       string    `json:"sku"`
	Cost      int64     `json:"cost"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
