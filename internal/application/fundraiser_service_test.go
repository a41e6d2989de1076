package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

type mockFundraiserRepo struct {
	mock.Mock
}

func (m *mockFundraiserRepo) Create(ctx context.Context, f *entity.Fundraiser) error {
	args := m.Called(ctx, f)
	if args.Error(0) == nil {
		f.ID = "fundraiser-1"
	}
	return args.Error(0)
}

func (m *mockFundraiserRepo) GetByID(ctx context.Context, id string) (*entity.Fundraiser, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*entity.Fundraiser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFundraiserRepo) AddDonation(ctx context.Context, fundraiserID, userID string, amount decimal.Decimal) (*entity.Donation, error) {
	args := m.Called(ctx, fundraiserID, userID, amount)
	if d := args.Get(0); d != nil {
		return d.(*entity.Donation), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDonate(t *testing.T) {
	repo := new(mockFundraiserRepo)
	amount := decimal.RequireFromString("25.00")
	repo.On("AddDonation", mock.Anything, "fundraiser-1", "user-1", amount).
		Return(&entity.Donation{ID: "donation-1", Amount: amount}, nil)
	svc := NewFundraiserService(repo, nil, nil)

	d, err := svc.Donate(context.Background(), "fundraiser-1", "user-1", amount)
	require.NoError(t, err)
	assert.Equal(t, "donation-1", d.ID)
	repo.AssertExpectations(t)
}

func TestDonateNonPositiveAmount(t *testing.T) {
	repo := new(mockFundraiserRepo)
	svc := NewFundraiserService(repo, nil, nil)

	for _, a := range []string{"0", "-5.00"} {
		_, err := svc.Donate(context.Background(), "fundraiser-1", "user-1", decimal.RequireFromString(a))
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
	repo.AssertNotCalled(t, "AddDonation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
