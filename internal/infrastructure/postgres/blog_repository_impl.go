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

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, content, image, writer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, b.Title, b.Content, b.Image, b.WriterID)

	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.BlogDetail, error) {
	d := &entity.BlogDetail{}
	writer := entity.UserRef{}
	row := r.pool.QueryRow(ctx, `
		SELECT b.id, b.title, b.content, b.image, b.writer_id, b.created_at, u.id, u.name
		FROM blogs b
		JOIN users u ON u.id = b.writer_id
		WHERE b.id = $1
	`, id)

	if err := row.Scan(&d.ID, &d.Title, &d.Content, &d.Image, &d.WriterID, &d.CreatedAt,
		&writer.ID, &writer.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("blog not found")
		}
		return nil, apperrors.Store(err)
	}
	d.Writer = &writer

	rows, err := r.pool.Query(ctx, `
		SELECT v.vote, u.id, u.name
		FROM blog_votes v
		JOIN users u ON u.id = v.user_id
		WHERE v.blog_id = $1
	`, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	d.Upvotes = make([]entity.UserRef, 0)
	d.Downvotes = make([]entity.UserRef, 0)
	for rows.Next() {
		var (
			vote int16
			u    entity.UserRef
		)
		if err := rows.Scan(&vote, &u.ID, &u.Name); err != nil {
			return nil, apperrors.Store(err)
		}
		if vote > 0 {
			d.Upvotes = append(d.Upvotes, u)
		} else {
			d.Downvotes = append(d.Downvotes, u)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return d, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]entity.Blog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.title, b.content, b.image, b.writer_id, b.created_at, u.id, u.name
		FROM blogs b
		JOIN users u ON u.id = b.writer_id
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]entity.Blog, 0)
	for rows.Next() {
		var (
			b      entity.Blog
			writer entity.UserRef
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Image, &b.WriterID, &b.CreatedAt,
			&writer.ID, &writer.Name); err != nil {
			return nil, apperrors.Store(err)
		}
		b.Writer = &writer
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

// ToggleVote flips the caller's vote on a blog. Voting the same direction
// twice removes the vote; voting the opposite direction replaces it.
func (r *BlogRepository) ToggleVote(ctx context.Context, blogID, userID string, upvote bool) (*entity.BlogDetail, error) {
	vote := int16(1)
	if !upvote {
		vote = -1
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var existing int16
	err = tx.QueryRow(ctx, `
		SELECT vote FROM blog_votes WHERE blog_id = $1 AND user_id = $2 FOR UPDATE
	`, blogID, userID).Scan(&existing)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// A missing blog surfaces here as a foreign key violation.
		if _, err := tx.Exec(ctx, `
			INSERT INTO blog_votes (blog_id, user_id, vote) VALUES ($1, $2, $3)
		`, blogID, userID, vote); err != nil {
			return nil, storeOrNotFound(err, "blog not found")
		}
	case err != nil:
		return nil, apperrors.Store(err)
	case existing == vote:
		if _, err := tx.Exec(ctx, `
			DELETE FROM blog_votes WHERE blog_id = $1 AND user_id = $2
		`, blogID, userID); err != nil {
			return nil, apperrors.Store(err)
		}
	default:
		if _, err := tx.Exec(ctx, `
			UPDATE blog_votes SET vote = $3 WHERE blog_id = $1 AND user_id = $2
		`, blogID, userID, vote); err != nil {
			return nil, apperrors.Store(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Store(err)
	}
	return r.GetByID(ctx, blogID)
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
