package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create records the order and bumps the listing's sold stock in one
// transaction. The stock check happens under the row lock taken by UPDATE so
// concurrent orders cannot oversell.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.Store(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE listings
		SET sold_stock = sold_stock + $2
		WHERE id = $1 AND sold_stock + $2 <= total_stock
	`, o.ListingID, o.Quantity)
	if err != nil {
		return apperrors.Store(err)
	}
	if res.RowsAffected() == 0 {
		// Either the listing is gone or the stock would go negative.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM listings WHERE id = $1)`, o.ListingID).Scan(&exists); err != nil {
			return apperrors.Store(err)
		}
		if !exists {
			return apperrors.NotFound("listing not found")
		}
		return apperrors.Validation("not enough stock available")
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (listing_id, buyer_id, seller_id, quantity, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, o.ListingID, o.BuyerID, o.SellerID, o.Quantity, o.TotalPrice, o.Status)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return apperrors.Store(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
