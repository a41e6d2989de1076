package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/activity"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

type OrderService struct {
	Orders   repository.OrderRepository
	Listings repository.ListingRepository
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewOrderService(orders repository.OrderRepository, listings repository.ListingRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Listings: listings, Pub: pub, Logger: logger}
}

// Place creates an order for quantity units of a listing. The total price is
// derived from the listing's current price; the seller is the listing owner.
func (s *OrderService) Place(ctx context.Context, buyerID, listingID string, quantity int) (*entity.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	l, err := s.Listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID == buyerID {
		return nil, apperrors.Validation("cannot order your own listing")
	}

	o := &entity.Order{
		ListingID:  listingID,
		BuyerID:    buyerID,
		SellerID:   l.OwnerID,
		Quantity:   quantity,
		TotalPrice: l.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:     "pending",
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if s.Pub != nil {
		ev := activity.Event{
			Type:       activity.OrderPlaced,
			ActorID:    buyerID,
			EntityID:   o.ID,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("type", ev.Type).Warn("activity publish failed")
		}
	}
	return o, nil
}
