package domain

import "github.com/shopspring/decimal"

// Product is a purchasable menu entry. The catalog is owned by the remote
// gateway; this layer only reads it and issues create/update/delete requests.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageURL"`
	ActiveStatus bool            `json:"activeStatus"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
