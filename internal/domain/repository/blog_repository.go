package repository

import (
	"context"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
)

// BlogRepository owns blog posts and their votes. ToggleVote adds the user's
// vote in the given direction, removing it when already present and clearing
// any vote in the opposite direction.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.BlogDetail, error)
	List(ctx context.Context) ([]entity.Blog, error)
	ToggleVote(ctx context.Context, blogID, userID string, upvote bool) (*entity.BlogDetail, error)
}
