package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
)

// FundraiserRepository owns fundraisers and their donation entries.
// AddDonation appends to the donor's my_donations relation and bumps the
// fundraiser's collected amount in one transaction.
type FundraiserRepository interface {
	Create(ctx context.Context, f *entity.Fundraiser) error
	GetByID(ctx context.Context, id string) (*entity.Fundraiser, error)
	AddDonation(ctx context.Context, fundraiserID, userID string, amount decimal.Decimal) (*entity.Donation, error)
}
