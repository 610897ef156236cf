package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"splittab/internal/config"
	"splittab/internal/domain"
)

// EditClaims are the JWT claims of a bill edit token. A token authorizes
// mutations to exactly one bill.
type EditClaims struct {
	jwt.RegisteredClaims
	BillID uuid.UUID `json:"bill_id"`
}

// TokenService issues and validates bill edit tokens.
type TokenService interface {
	IssueEditToken(billID uuid.UUID) (string, error)
	ValidateEditToken(tokenString string) (*EditClaims, error)
}

type tokenService struct {
	cfg config.TokenConfig
}

// NewTokenService creates a new TokenService implementation.
func NewTokenService(cfg config.TokenConfig) TokenService {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) IssueEditToken(billID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &EditClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   billID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"edit"},
		},
		BillID: billID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing edit token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateEditToken(tokenString string) (*EditClaims, error) {
	claims := &EditClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing edit token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == "edit" {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}
