package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/activity"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

type BlogService struct {
	Repo   repository.BlogRepository
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewBlogService(repo repository.BlogRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *BlogService {
	return &BlogService{Repo: repo, Pub: pub, Logger: logger}
}

type CreateBlogInput struct {
	Title   string
	Content string
	Image   string
}

func (s *BlogService) Create(ctx context.Context, writerID string, in CreateBlogInput) (*entity.Blog, error) {
	content := in.Content
	if content == "" {
		content = "No content provided"
	}
	b := &entity.Blog{
		Title:    in.Title,
		Content:  content,
		Image:    in.Image,
		WriterID: writerID,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	if s.Pub != nil {
		ev := activity.Event{
			Type:       activity.BlogPublished,
			ActorID:    writerID,
			EntityID:   b.ID,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("type", ev.Type).Warn("activity publish failed")
		}
	}
	return b, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*entity.BlogDetail, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *BlogService) List(ctx context.Context) ([]entity.Blog, error) {
	return s.Repo.List(ctx)
}

func (s *BlogService) Vote(ctx context.Context, blogID, userID string, upvote bool) (*entity.BlogDetail, error) {
	return s.Repo.ToggleVote(ctx, blogID, userID, upvote)
}
