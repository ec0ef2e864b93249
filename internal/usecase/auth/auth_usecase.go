package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UseCase struct {
	matchmakerRepo repository.MatchmakerRepository
	jwtSecret      string
	expiry         time.Duration
}

func NewUseCase(matchmakerRepo repository.MatchmakerRepository, jwtSecret string, expiryMin int) *UseCase {
	return &UseCase{
		matchmakerRepo: matchmakerRepo,
		jwtSecret:      jwtSecret,
		expiry:         time.Duration(expiryMin) * time.Minute,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	Matchmaker *domain.Matchmaker `json:"matchmaker"`
}

type claims struct {
	MatchmakerID int `json:"matchmaker_id"`
	jwt.RegisteredClaims
}

// Login verifies credentials and issues an access token.
func (uc *UseCase) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	m, err := uc.matchmakerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !m.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		MatchmakerID: m.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", m.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.expiry)),
		},
	})
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResponse{Token: signed, Matchmaker: m}, nil
}

// ParseToken validates an access token and returns the matchmaker id.
func (uc *UseCase) ParseToken(tokenString string) (int, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidCredentials
	}
	return c.MatchmakerID, nil
}

// Me returns the authenticated matchmaker.
func (uc *UseCase) Me(ctx context.Context, matchmakerID int) (*domain.Matchmaker, error) {
	return uc.matchmakerRepo.GetByID(ctx, matchmakerID)
}

// HashPassword is used by account seeding.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
