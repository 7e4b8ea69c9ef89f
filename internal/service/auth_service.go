package service

import (
	"context"
	"crypto/subtle"
	"time"

	"kioscopos/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the single operator account configured for the shop.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// Credenciales is the operator account and token settings, taken from config.
type Credenciales struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
	Expiracion   time.Duration
}

// Claims are embedded in every access token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	cred Credenciales
	now  func() time.Time
}

func NewAuthService(cred Credenciales) AuthService {
	if cred.Expiracion <= 0 {
		cred.Expiracion = 12 * time.Hour
	}
	return &authService{cred: cred, now: time.Now}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cred.Username)) == 1
	// bcrypt runs even for an unknown username.
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cred.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, ErrCredenciales
	}

	now := s.now()
	claims := Claims{
		Username: s.cred.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.cred.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cred.Expiracion)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cred.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.cred.Expiracion.Seconds()),
		Username:    s.cred.Username,
	}, nil
}
