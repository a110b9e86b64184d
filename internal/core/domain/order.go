package domain

import "time"

// Order is one line of the append-only purchase ledger. Product name and
// price are copied from the catalog at purchase time; later catalog changes
// never touch past orders.
type Order struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Product   string    `json:"product" bson:"product"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
