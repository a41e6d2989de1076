package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Fundraiser struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Story        string          `json:"story"`
	TargetFunds  decimal.Decimal `json:"target_funds"`
	ProjectID    int64           `json:"projectId"`
	Deadline     time.Time       `json:"deadline"`
	AmtCollected decimal.Decimal `json:"amt_collected"`
	Images       []string        `json:"images"`
	OwnerID      string          `json:"owner_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FundraiserRef is the subset a donation expands into, with the owner
// expanded one level further.
type FundraiserRef struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	TargetFunds decimal.Decimal `json:"target_funds"`
	Images      []string        `json:"images"`
	Owner       *UserRef        `json:"owner,omitempty"`
}

// DonatorEntry links a donating user to a fundraiser from the fundraiser's
// side of the relation.
type DonatorEntry struct {
	Amount    decimal.Decimal `json:"amount"`
	DonatedAt time.Time       `json:"donated_at"`
	User      *UserRef        `json:"user,omitempty"`
}

// FundraiserSummary is the my_fundraisers projection. DonatorCount is derived
// from the donators list and is zero when the list is empty.
type FundraiserSummary struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	TargetFunds  decimal.Decimal `json:"target_funds"`
	ProjectID    int64           `json:"projectId"`
	Deadline     time.Time       `json:"deadline"`
	AmtCollected decimal.Decimal `json:"amt_collected"`
	Images       []string        `json:"images"`
	Donators     []DonatorEntry  `json:"donators"`
	DonatorCount int             `json:"donatorsCount"`
}
