package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the aggregate root for the identity domain. The wallet address is
// the primary identity key: unique, immutable once set, supplied by the
// client at connect time (ownership is not proven at this layer).
type User struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Name          string    `json:"name"`
	Basename      string    `json:"basename,omitempty"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserRef is the partial projection used when a related record expands its
// owner, buyer, seller or donator.
type UserRef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

// Donation is a my_donations entry: the fundraiser reference expands into a
// summary carrying its own owner.
type Donation struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	DonatedAt  time.Time       `json:"donated_at"`
	Fundraiser *FundraiserRef  `json:"fundraiser,omitempty"`
}

// UserAggregate is the fully expanded profile view returned by get-profile.
// Relation slices are always non-nil so an empty list serializes as [].
type UserAggregate struct {
	User
	MyOrders      []OrderView         `json:"my_order"`
	MyListings    []Listing           `json:"my_listings"`
	MyDonations   []Donation          `json:"my_donations"`
	MyFundraisers []FundraiserSummary `json:"my_fundraisers"`
	MyBlogs       []Blog              `json:"my_blogs"`
}
