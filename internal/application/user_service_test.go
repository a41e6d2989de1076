package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
	"github.com/DonOmbisi/kilimo3/pkg/helpers"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = "created-id"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByWallet(ctx context.Context, walletAddress string) (*entity.User, error) {
	args := m.Called(ctx, walletAddress)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id string, patch repository.ProfilePatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetAggregate(ctx context.Context, id string, spec repository.ExpandSpec) (*entity.UserAggregate, error) {
	args := m.Called(ctx, id, spec)
	if a := args.Get(0); a != nil {
		return a.(*entity.UserAggregate), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService(repo *mockUserRepo) *UserService {
	jwt := helpers.NewJWTManager("test-secret", 24*time.Hour, 60*24*time.Hour)
	return NewUserService(repo, jwt, nil, nil, nil)
}

func existingUser() *entity.User {
	return &entity.User{
		ID:            "user-1",
		WalletAddress: "0xabc",
		Name:          "Alice",
		Phone:         "+100",
	}
}

func TestConnectExistingUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(existingUser(), nil)
	svc := newTestService(repo)

	u, pair, err := svc.Connect(context.Background(), ConnectInput{WalletAddress: "0xabc"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiry.After(pair.AccessExpiry))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConnectExistingUserKeepsProfile(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(existingUser(), nil)
	svc := newTestService(repo)

	u, _, err := svc.Connect(context.Background(), ConnectInput{
		WalletAddress: "0xabc",
		Name:          "Someone Else",
		Phone:         "+999",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "+100", u.Phone)
}

func TestConnectNewUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xdef").Return(nil, apperrors.NotFound("user not found"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.WalletAddress == "0xdef" && u.Name == "Bob" && u.Phone == "+200"
	})).Return(nil)
	svc := newTestService(repo)

	u, pair, err := svc.Connect(context.Background(), ConnectInput{
		WalletAddress: "0xdef",
		Name:          "Bob",
		Phone:         "+200",
	})
	require.NoError(t, err)
	assert.Equal(t, "created-id", u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	repo.AssertExpectations(t)
}

func TestConnectNewUserMissingProfile(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xdef").Return(nil, apperrors.NotFound("user not found"))
	svc := newTestService(repo)

	_, _, err := svc.Connect(context.Background(), ConnectInput{WalletAddress: "0xdef", Name: "Bob"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConnectMissingWallet(t *testing.T) {
	svc := newTestService(new(mockUserRepo))
	_, _, err := svc.Connect(context.Background(), ConnectInput{})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestConnectLostRaceRecovers(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(nil, apperrors.NotFound("user not found")).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.Conflict("wallet address already registered"))
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(existingUser(), nil).Once()
	svc := newTestService(repo)

	u, _, err := svc.Connect(context.Background(), ConnectInput{
		WalletAddress: "0xabc",
		Name:          "Alice",
		Phone:         "+100",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	repo.AssertExpectations(t)
}

func TestCheckKnownWallet(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(existingUser(), nil)
	svc := newTestService(repo)

	u, pair, exists, err := svc.Check(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "user-1", u.ID)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestCheckUnknownWallet(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xnope").Return(nil, apperrors.NotFound("user not found"))
	svc := newTestService(repo)

	u, pair, exists, err := svc.Check(context.Background(), "0xnope")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Nil(t, u)
	assert.Empty(t, pair.AccessToken)
}

func TestCheckMissingWallet(t *testing.T) {
	svc := newTestService(new(mockUserRepo))
	_, _, _, err := svc.Check(context.Background(), "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByWallet", mock.Anything, "0xabc").Return(existingUser(), nil)
	repo.On("GetByID", mock.Anything, "user-1").Return(existingUser(), nil)
	svc := newTestService(repo)

	_, pair, err := svc.Connect(context.Background(), ConnectInput{WalletAddress: "0xabc"})
	require.NoError(t, err)

	access, exp, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "0xabc", claims.WalletAddress)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestService(repo)
	svc.JWT = helpers.NewJWTManager("test-secret", 24*time.Hour, -time.Minute)

	refresh, _, err := svc.JWT.GenerateRefreshToken("user-1", "0xabc")
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), refresh)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newTestService(new(mockUserRepo))
	_, _, err := svc.Refresh(context.Background(), "garbage")
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func TestRefreshMissingToken(t *testing.T) {
	svc := newTestService(new(mockUserRepo))
	_, _, err := svc.Refresh(context.Background(), "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGetProfileRequestsFullExpansion(t *testing.T) {
	repo := new(mockUserRepo)
	agg := &entity.UserAggregate{User: *existingUser()}
	repo.On("GetAggregate", mock.Anything, "user-1", mock.MatchedBy(func(spec repository.ExpandSpec) bool {
		return spec.Has("my_order") && spec.Has("my_listings") && spec.Has("my_donations") &&
			spec.Has("my_fundraisers") && spec.Has("my_blogs")
	})).Return(agg, nil)
	svc := newTestService(repo)

	got, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, agg, got)
}

func TestGetProfileUnauthenticated(t *testing.T) {
	svc := newTestService(new(mockUserRepo))
	_, err := svc.GetProfile(context.Background(), "")
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
}

func TestUpdateProfilePassesPatchThrough(t *testing.T) {
	repo := new(mockUserRepo)
	name := "New Name"
	updated := existingUser()
	updated.Name = name
	repo.On("UpdateProfile", mock.Anything, "user-1", mock.MatchedBy(func(p repository.ProfilePatch) bool {
		return p.Name != nil && *p.Name == name && p.Basename == nil && p.Phone == nil
	})).Return(updated, nil)
	svc := newTestService(repo)

	u, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.Name)
	repo.AssertExpectations(t)
}
