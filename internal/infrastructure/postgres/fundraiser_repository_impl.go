package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

type FundraiserRepository struct {
	pool *pgxpool.Pool
}

func NewFundraiserRepository(pool *pgxpool.Pool) *FundraiserRepository {
	return &FundraiserRepository{pool: pool}
}

func (r *FundraiserRepository) Create(ctx context.Context, f *entity.Fundraiser) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO fundraisers (title, story, target_funds, project_id, deadline, images, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, amt_collected, created_at
	`, f.Title, f.Story, f.TargetFunds, f.ProjectID, f.Deadline, f.Images, f.OwnerID)

	if err := row.Scan(&f.ID, &f.AmtCollected, &f.CreatedAt); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (r *FundraiserRepository) GetByID(ctx context.Context, id string) (*entity.Fundraiser, error) {
	f := &entity.Fundraiser{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, story, target_funds, project_id, deadline, amt_collected, images, owner_id, created_at
		FROM fundraisers
		WHERE id = $1
	`, id)

	if err := row.Scan(&f.ID, &f.Title, &f.Story, &f.TargetFunds, &f.ProjectID,
		&f.Deadline, &f.AmtCollected, &f.Images, &f.OwnerID, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("fundraiser not found")
		}
		return nil, apperrors.Store(err)
	}
	return f, nil
}

// AddDonation inserts the donation entry and bumps the fundraiser's collected
// amount in one transaction. donated_at defaults server-side.
func (r *FundraiserRepository) AddDonation(ctx context.Context, fundraiserID, userID string, amount decimal.Decimal) (*entity.Donation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE fundraisers SET amt_collected = amt_collected + $2 WHERE id = $1
	`, fundraiserID, amount)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if res.RowsAffected() == 0 {
		return nil, apperrors.NotFound("fundraiser not found")
	}

	d := &entity.Donation{Amount: amount}
	row := tx.QueryRow(ctx, `
		INSERT INTO donations (fundraiser_id, user_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, donated_at
	`, fundraiserID, userID, amount)
	if err := row.Scan(&d.ID, &d.DonatedAt); err != nil {
		return nil, apperrors.Store(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Store(err)
	}
	return d, nil
}

var _ repository.FundraiserRepository = (*FundraiserRepository)(nil)
