package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is an agricultural produce listing. Price is per 100kg.
type Listing struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Desc       string          `json:"desc"`
	Price      decimal.Decimal `json:"price"`
	TotalStock int             `json:"total_stock"`
	SoldStock  int             `json:"sold_stock"`
	Images     []string        `json:"images"`
	Location   string          `json:"location"`
	OwnerID    string          `json:"owner_id"`
	ListingID  int64           `json:"listingId"`
	Owner      *UserRef        `json:"owner,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ListingRef is the subset of listing fields an order expands into.
type ListingRef struct {
	ID       string   `json:"id"`
	Images   []string `json:"images"`
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Location string   `json:"location"`
}

// ListingDetail is the single-listing view with orders and ownership flag.
type ListingDetail struct {
	Listing
	Orders      []OrderView `json:"orders"`
	IsUserOwner bool        `json:"isUserOwner"`
}
