package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listings (title, descr, price, total_stock, images, location, owner_id, listing_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, sold_stock, created_at
	`, l.Title, l.Desc, l.Price, l.TotalStock, l.Images, l.Location, l.OwnerID, l.ListingID)

	if err := row.Scan(&l.ID, &l.SoldStock, &l.CreatedAt); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.ListingDetail, error) {
	d := &entity.ListingDetail{}
	owner := entity.UserRef{}
	row := r.pool.QueryRow(ctx, `
		SELECT l.id, l.title, l.descr, l.price, l.total_stock, l.sold_stock,
		       l.images, l.location, l.owner_id, l.listing_id, l.created_at,
		       u.id, u.name, u.wallet_address
		FROM listings l
		JOIN users u ON u.id = l.owner_id
		WHERE l.id = $1
	`, id)

	if err := row.Scan(&d.ID, &d.Title, &d.Desc, &d.Price, &d.TotalStock, &d.SoldStock,
		&d.Images, &d.Location, &d.OwnerID, &d.ListingID, &d.CreatedAt,
		&owner.ID, &owner.Name, &owner.WalletAddress); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("listing not found")
		}
		return nil, apperrors.Store(err)
	}
	d.Owner = &owner

	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.quantity, o.total_price, o.status, o.created_at,
		       b.id, b.name, b.wallet_address
		FROM orders o
		JOIN users b ON b.id = o.buyer_id
		WHERE o.listing_id = $1
		ORDER BY o.created_at
	`, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	d.Orders = make([]entity.OrderView, 0)
	for rows.Next() {
		var (
			o     entity.OrderView
			buyer entity.UserRef
		)
		if err := rows.Scan(&o.ID, &o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt,
			&buyer.ID, &buyer.Name, &buyer.WalletAddress); err != nil {
			return nil, apperrors.Store(err)
		}
		o.Buyer = &buyer
		d.Orders = append(d.Orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return d, nil
}

func (r *ListingRepository) List(ctx context.Context) ([]entity.Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.title, l.descr, l.price, l.total_stock, l.sold_stock,
		       l.images, l.location, l.owner_id, l.listing_id, l.created_at,
		       u.id, u.name, u.wallet_address
		FROM listings l
		JOIN users u ON u.id = l.owner_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]entity.Listing, 0)
	for rows.Next() {
		var (
			l     entity.Listing
			owner entity.UserRef
		)
		if err := rows.Scan(&l.ID, &l.Title, &l.Desc, &l.Price, &l.TotalStock, &l.SoldStock,
			&l.Images, &l.Location, &l.OwnerID, &l.ListingID, &l.CreatedAt,
			&owner.ID, &owner.Name, &owner.WalletAddress); err != nil {
			return nil, apperrors.Store(err)
		}
		l.Owner = &owner
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

func (r *ListingRepository) AddImage(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE listings SET images = array_append(images, $2) WHERE id = $1
	`, id, url)
	if err != nil {
		return apperrors.Store(err)
	}
	if res.RowsAffected() == 0 {
		return apperrors.NotFound("listing not found")
	}
	return nil
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
