package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/activity"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

// UserService orchestrates the wallet connect, check, refresh and profile
// flows. It holds no cross-request state; uniqueness on connect is delegated
// to the store's wallet index.
type UserService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Redis: rdb, Pub: pub, Logger: logger}
}

type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

type sessionRecord struct {
	UserID        string    `json:"user_id"`
	WalletAddress string    `json:"wallet_address"`
	Name          string    `json:"name"`
	IssuedAt      time.Time `json:"issued_at"`
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// ConnectInput carries the connect payload. Profile fields are only
// consulted when the wallet address is new.
type ConnectInput struct {
	WalletAddress string
	Name          string
	Basename      string
	Phone         string
}

// Connect finds or creates the user for a wallet address and issues both
// tokens. Registration requires name and phone; an existing user's profile
// is never overwritten by connect.
func (s *UserService) Connect(ctx context.Context, in ConnectInput) (*entity.User, TokenPair, error) {
	if in.WalletAddress == "" {
		return nil, TokenPair{}, apperrors.Validation("wallet address is required")
	}

	u, err := s.Repo.GetByWallet(ctx, in.WalletAddress)
	switch apperrors.KindOf(err) {
	case apperrors.KindUnknown:
		if err != nil {
			return nil, TokenPair{}, err
		}
	case apperrors.KindNotFound:
		if in.Name == "" || in.Phone == "" {
			return nil, TokenPair{}, apperrors.Validation("name and phone are required for registration")
		}
		u = &entity.User{
			WalletAddress: in.WalletAddress,
			Name:          in.Name,
			Basename:      in.Basename,
			Phone:         in.Phone,
		}
		if cerr := s.Repo.Create(ctx, u); cerr != nil {
			if apperrors.KindOf(cerr) != apperrors.KindConflict {
				return nil, TokenPair{}, cerr
			}
			// Lost a connect race for the same address; the winner's
			// record is authoritative.
			if u, err = s.Repo.GetByWallet(ctx, in.WalletAddress); err != nil {
				return nil, TokenPair{}, err
			}
		}
	default:
		return nil, TokenPair{}, err
	}

	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Check reports whether a wallet address is registered. An unknown address
// is a normal negative result, not an error.
func (s *UserService) Check(ctx context.Context, walletAddress string) (*entity.User, TokenPair, bool, error) {
	if walletAddress == "" {
		return nil, TokenPair{}, false, apperrors.Validation("wallet address is required")
	}
	u, err := s.Repo.GetByWallet(ctx, walletAddress)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, TokenPair{}, false, nil
		}
		return nil, TokenPair{}, false, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, false, err
	}
	return u, pair, true, nil
}

// IssueTokens generates the access/refresh pair and records an advisory
// session in Redis. The session is not load-bearing for auth; a cache
// failure is logged and ignored.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.WalletAddress)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.WalletAddress)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		rec := sessionRecord{
			UserID:        u.ID,
			WalletAddress: u.WalletAddress,
			Name:          u.Name,
			IssuedAt:      time.Now().UTC(),
		}
		if rErr := helpers.RedisSetJSON(ctx, s.Redis, sessionKey(u.ID), rec, s.JWT.AccessTTL); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("user_id", u.ID).Warn("session cache write failed")
		}
	}

	return TokenPair{AccessToken: access, AccessExpiry: aexp, RefreshToken: refresh, RefreshExpiry: rexp}, nil
}

// Refresh verifies a refresh token and mints a new access token. The refresh
// token itself is not rotated.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	if refreshToken == "" {
		return "", time.Time{}, apperrors.Validation("refresh token is required")
	}
	claims, err := s.JWT.Verify(refreshToken)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindConfig {
			return "", time.Time{}, err
		}
		return "", time.Time{}, apperrors.Unauthenticated("invalid or expired refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", time.Time{}, err
	}
	access, exp, err := s.JWT.GenerateAccessToken(u.ID, u.WalletAddress)
	if err != nil {
		return "", time.Time{}, err
	}
	return access, exp, nil
}

// GetProfile loads the fully expanded user aggregate.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.UserAggregate, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("user not authenticated")
	}
	return s.Repo.GetAggregate(ctx, userID, repository.ProfileExpand())
}

type UpdateProfileInput struct {
	Name     *string
	Basename *string
	Phone    *string
}

// UpdateProfile applies the supplied fields only and refreshes the advisory
// session record.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	if userID == "" {
		return nil, apperrors.Unauthenticated("user not authenticated")
	}
	u, err := s.Repo.UpdateProfile(ctx, userID, repository.ProfilePatch{
		Name:     in.Name,
		Basename: in.Basename,
		Phone:    in.Phone,
	})
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		rec := sessionRecord{
			UserID:        u.ID,
			WalletAddress: u.WalletAddress,
			Name:          u.Name,
			IssuedAt:      time.Now().UTC(),
		}
		// Keep the original issue time; the update only refreshes profile
		// fields in the advisory record.
		var existing sessionRecord
		if ok, gErr := helpers.RedisGetJSON(ctx, s.Redis, sessionKey(u.ID), &existing); gErr == nil && ok {
			rec.IssuedAt = existing.IssuedAt
		}
		if ttl, tErr := s.Redis.TTL(ctx, sessionKey(u.ID)).Result(); tErr == nil && ttl > 0 {
			if rErr := helpers.RedisSetJSON(ctx, s.Redis, sessionKey(u.ID), rec, ttl); rErr != nil && s.Logger != nil {
				s.Logger.WithError(rErr).WithField("user_id", u.ID).Warn("session cache write failed")
			}
		}
	}

	if s.Pub != nil {
		ev := activity.Event{
			Type:       activity.ProfileUpdated,
			ActorID:    u.ID,
			EntityID:   u.ID,
			OccurredAt: time.Now().UTC(),
		}
		if pErr := s.Pub.PublishJSON(ctx, ev); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("type", ev.Type).Warn("activity publish failed")
		}
	}
	return u, nil
}
