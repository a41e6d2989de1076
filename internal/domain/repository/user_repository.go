package repository

import (
	"context"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
)

// Expand names a relation to populate, the subset of fields to project and
// deeper expansions applied to each populated record. The tree is the
// contract between the profile flow and the store; the store decides how to
// satisfy it.
type Expand struct {
	Relation string
	Fields   []string
	Expand   []Expand
}

type ExpandSpec []Expand

// Has reports whether a top-level relation is requested.
func (s ExpandSpec) Has(relation string) bool {
	_, ok := s.Get(relation)
	return ok
}

// Get returns the expansion entry for a top-level relation.
func (s ExpandSpec) Get(relation string) (Expand, bool) {
	for _, e := range s {
		if e.Relation == relation {
			return e, true
		}
	}
	return Expand{}, false
}

// Sub returns the nested expansion applied to a populated relation.
func (e Expand) Sub(relation string) (Expand, bool) {
	for _, c := range e.Expand {
		if c.Relation == relation {
			return c, true
		}
	}
	return Expand{}, false
}

// Wants reports whether a field is part of the projection. An empty Fields
// list selects everything.
func (e Expand) Wants(field string) bool {
	if len(e.Fields) == 0 {
		return true
	}
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// ProfileExpand is the full expansion tree used by get-profile.
func ProfileExpand() ExpandSpec {
	return ExpandSpec{
		{
			Relation: "my_order",
			Expand: []Expand{
				{Relation: "listing", Fields: []string{"images", "title", "desc", "location"}},
				{Relation: "buyer", Fields: []string{"name"}},
				{Relation: "seller", Fields: []string{"name"}},
			},
		},
		{Relation: "my_listings"},
		{
			Relation: "my_donations",
			Expand: []Expand{
				{
					Relation: "fundraiser",
					Fields:   []string{"title", "target_funds", "images"},
					Expand: []Expand{
						{Relation: "owner", Fields: []string{"name", "wallet_address"}},
					},
				},
			},
		},
		{
			Relation: "my_fundraisers",
			Fields:   []string{"title", "target_funds", "projectId", "donators", "deadline", "amt_collected", "images"},
			Expand: []Expand{
				{
					Relation: "donators",
					Expand: []Expand{
						{Relation: "user", Fields: []string{"name", "wallet_address"}},
					},
				},
			},
		},
		{Relation: "my_blogs"},
	}
}

// ProfilePatch carries a partial profile update; nil fields are untouched.
type ProfilePatch struct {
	Name     *string
	Basename *string
	Phone    *string
}

// UserRepository is the identity store adapter. Create must be atomic with
// respect to the unique wallet_address constraint: a concurrent create for
// the same address yields a Conflict error rather than a duplicate row.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*entity.User, error)
	GetAggregate(ctx context.Context, id string, spec ExpandSpec) (*entity.UserAggregate, error)
}
