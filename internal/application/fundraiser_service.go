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

type FundraiserService struct {
	Repo   repository.FundraiserRepository
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewFundraiserService(repo repository.FundraiserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *FundraiserService {
	return &FundraiserService{Repo: repo, Pub: pub, Logger: logger}
}

type CreateFundraiserInput struct {
	Title       string
	Story       string
	TargetFunds decimal.Decimal
	ProjectID   int64
	Deadline    time.Time
	Images      []string
}

func (s *FundraiserService) Create(ctx context.Context, ownerID string, in CreateFundraiserInput) (*entity.Fundraiser, error) {
	f := &entity.Fundraiser{
		Title:       in.Title,
		Story:       in.Story,
		TargetFunds: in.TargetFunds,
		ProjectID:   in.ProjectID,
		Deadline:    in.Deadline,
		Images:      in.Images,
		OwnerID:     ownerID,
	}
	if f.Images == nil {
		f.Images = []string{}
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.publish(ctx, activity.Event{
		Type:       activity.FundraiserOpened,
		ActorID:    ownerID,
		EntityID:   f.ID,
		OccurredAt: time.Now().UTC(),
		Document: map[string]any{
			"id":           f.ID,
			"title":        f.Title,
			"target_funds": f.TargetFunds.String(),
			"owner_id":     f.OwnerID,
		},
	})
	return f, nil
}

func (s *FundraiserService) Get(ctx context.Context, id string) (*entity.Fundraiser, error) {
	return s.Repo.GetByID(ctx, id)
}

// Donate records a positive donation against a fundraiser on behalf of the
// caller.
func (s *FundraiserService) Donate(ctx context.Context, fundraiserID, userID string, amount decimal.Decimal) (*entity.Donation, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Validation("donation amount must be positive")
	}
	d, err := s.Repo.AddDonation(ctx, fundraiserID, userID, amount)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, activity.Event{
		Type:       activity.DonationReceived,
		ActorID:    userID,
		EntityID:   fundraiserID,
		OccurredAt: time.Now().UTC(),
	})
	return d, nil
}

func (s *FundraiserService) publish(ctx context.Context, ev activity.Event) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("type", ev.Type).Warn("activity publish failed")
	}
}
