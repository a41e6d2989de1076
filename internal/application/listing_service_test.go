package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
)

func TestCreateListingNormalizesImages(t *testing.T) {
	repo := new(mockListingRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Listing) bool {
		return l.Images != nil && len(l.Images) == 0 && l.OwnerID == "owner-1"
	})).Return(nil)
	svc := NewListingService(repo, nil, "", nil, nil, "", nil)

	l, err := svc.Create(context.Background(), "owner-1", CreateListingInput{
		Title:      "Maize",
		Desc:       "Grade one",
		Price:      decimal.RequireFromString("32.50"),
		TotalStock: 40,
		Location:   "Nakuru",
	})
	require.NoError(t, err)
	assert.NotNil(t, l.Images)
	repo.AssertExpectations(t)
}

func TestGetListingMarksOwner(t *testing.T) {
	repo := new(mockListingRepo)
	repo.On("GetByID", mock.Anything, "listing-1").Return(maizeListing(), nil).Once()
	repo.On("GetByID", mock.Anything, "listing-1").Return(maizeListing(), nil).Once()
	svc := NewListingService(repo, nil, "", nil, nil, "", nil)

	asOwner, err := svc.Get(context.Background(), "listing-1", "seller-1")
	require.NoError(t, err)
	assert.True(t, asOwner.IsUserOwner)

	asVisitor, err := svc.Get(context.Background(), "listing-1", "buyer-1")
	require.NoError(t, err)
	assert.False(t, asVisitor.IsUserOwner)
}

func TestSearchWithoutElasticsearch(t *testing.T) {
	svc := NewListingService(new(mockListingRepo), nil, "", nil, nil, "", nil)

	hits, err := svc.Search(context.Background(), "maize", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
