package customer

import "time"

// MsgInvalidUser is returned when a customer id cannot be resolved.
const MsgInvalidUser = "invalid user"

// Customer represents a user able to own products and place orders.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
