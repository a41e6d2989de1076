package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

// Token verification failure reasons, distinguished so the middleware can
// report expired vs malformed tokens separately.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// JWTManager issues and verifies session tokens. Both access and refresh
// tokens carry the same claims and are signed with one process-wide secret.
type JWTManager struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

type Claims struct {
	UserID        string `json:"uid"`
	WalletAddress string `json:"wallet_address"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateAccessToken(userID, walletAddress string) (string, time.Time, error) {
	return m.generate(userID, walletAddress, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(userID, walletAddress string) (string, time.Time, error) {
	return m.generate(userID, walletAddress, m.RefreshTTL)
}

func (m *JWTManager) generate(userID, walletAddress string, ttl time.Duration) (string, time.Time, error) {
	if len(m.Secret) == 0 {
		return "", time.Time{}, apperrors.Config("signing secret is not configured")
	}
	exp := time.Now().Add(ttl)
	claims := &Claims{
		UserID:        userID,
		WalletAddress: walletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Verify parses and validates a token, returning ErrTokenExpired when the
// token is past its expiry and ErrTokenInvalid for any other parse or
// signature failure.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	if len(m.Secret) == 0 {
		return nil, apperrors.Config("signing secret is not configured")
	}
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
