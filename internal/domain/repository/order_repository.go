package repository

import (
	"context"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
)

// OrderRepository records orders. Create appends to the buyer's my_order
// relation and bumps the listing's sold stock in one transaction.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
}
