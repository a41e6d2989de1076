package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         string          `json:"id"`
	ListingID  string          `json:"listing_id"`
	BuyerID    string          `json:"buyer_id"`
	SellerID   string          `json:"seller_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderView expands an order's listing subset and the names of both parties.
type OrderView struct {
	ID         string          `json:"id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	Listing    *ListingRef     `json:"listing,omitempty"`
	Buyer      *UserRef        `json:"buyer,omitempty"`
	Seller     *UserRef        `json:"seller,omitempty"`
}
