package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
)

func TestNewAggregateEmptyRelations(t *testing.T) {
	agg := newAggregate(&entity.User{ID: "user-1", WalletAddress: "0xabc"})

	assert.Equal(t, "user-1", agg.ID)
	for name, rel := range map[string]int{
		"my_order":       len(agg.MyOrders),
		"my_listings":    len(agg.MyListings),
		"my_donations":   len(agg.MyDonations),
		"my_fundraisers": len(agg.MyFundraisers),
		"my_blogs":       len(agg.MyBlogs),
	} {
		assert.Zero(t, rel, name)
	}
	assert.NotNil(t, agg.MyOrders)
	assert.NotNil(t, agg.MyListings)
	assert.NotNil(t, agg.MyDonations)
	assert.NotNil(t, agg.MyFundraisers)
	assert.NotNil(t, agg.MyBlogs)
}

func summaryFor(id string) entity.FundraiserSummary {
	return entity.FundraiserSummary{
		ID:          id,
		Title:       "Irrigation",
		TargetFunds: decimal.RequireFromString("5000"),
		Donators:    make([]entity.DonatorEntry, 0),
	}
}

func TestAttachDonatorsZeroFundraisers(t *testing.T) {
	out := make([]entity.FundraiserSummary, 0)
	attachDonators(out, map[string][]entity.DonatorEntry{
		"orphan": {{Amount: decimal.RequireFromString("10")}},
	})
	assert.Empty(t, out)
}

func TestAttachDonatorsNoDonators(t *testing.T) {
	out := []entity.FundraiserSummary{summaryFor("f1")}
	attachDonators(out, map[string][]entity.DonatorEntry{})

	require.NotNil(t, out[0].Donators)
	assert.Empty(t, out[0].Donators)
	assert.Equal(t, 0, out[0].DonatorCount)
}

func TestAttachDonatorsCountsEntries(t *testing.T) {
	out := []entity.FundraiserSummary{summaryFor("f1"), summaryFor("f2")}
	now := time.Now()
	attachDonators(out, map[string][]entity.DonatorEntry{
		"f1": {
			{Amount: decimal.RequireFromString("10"), DonatedAt: now, User: &entity.UserRef{ID: "u1", Name: "Alice"}},
			{Amount: decimal.RequireFromString("20"), DonatedAt: now, User: &entity.UserRef{ID: "u2", Name: "Bob"}},
		},
	})

	assert.Equal(t, 2, out[0].DonatorCount)
	assert.Len(t, out[0].Donators, 2)
	assert.Equal(t, "Alice", out[0].Donators[0].User.Name)
	assert.Equal(t, 0, out[1].DonatorCount)
	assert.Empty(t, out[1].Donators)
}

func TestProjectUserRefFieldSubset(t *testing.T) {
	full := entity.UserRef{ID: "u1", Name: "Alice", WalletAddress: "0xabc"}

	nameOnly := projectUserRef(full, repository.Expand{Relation: "buyer", Fields: []string{"name"}})
	assert.Equal(t, "u1", nameOnly.ID)
	assert.Equal(t, "Alice", nameOnly.Name)
	assert.Empty(t, nameOnly.WalletAddress)

	everything := projectUserRef(full, repository.Expand{Relation: "owner"})
	assert.Equal(t, "0xabc", everything.WalletAddress)
}

func TestProjectListingRefFieldSubset(t *testing.T) {
	full := entity.ListingRef{
		ID:       "l1",
		Images:   []string{"a.png"},
		Title:    "Maize",
		Desc:     "Grade one",
		Location: "Nakuru",
	}

	got := projectListingRef(full, repository.Expand{Relation: "listing", Fields: []string{"title", "location"}})
	assert.Equal(t, "Maize", got.Title)
	assert.Equal(t, "Nakuru", got.Location)
	assert.Nil(t, got.Images)
	assert.Empty(t, got.Desc)
}
