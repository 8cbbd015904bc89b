package entity

import "time"

type Product struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // stored in cents
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Location    string    `json:"location"`
	SellerID    int64     `json:"sellerId"`
	Status      string    `json:"status"` // "active", "sold", "archived"
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProductImage struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	URL       string    `json:"url"`
	IsMain    bool      `json:"isMain"`
	CreatedAt time.Time `json:"createdAt"`
}
