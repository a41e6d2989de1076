package repository

import (
	"context"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
)

// ListingRepository owns listing rows. Creation appends the listing to the
// owner's my_listings relation as part of the same transaction.
type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.ListingDetail, error)
	List(ctx context.Context) ([]entity.Listing, error)
	AddImage(ctx context.Context, id, url string) error
}
