package service_test

import (
	"context"
	"testing"
	"time"

	"kioscopos/internal/dto"
	"kioscopos/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func nuevoAuth(t *testing.T) service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	return service.NewAuthService(service.Credenciales{
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
		Expiracion:   2 * time.Hour,
	})
}

func TestLogin_OK(t *testing.T) {
	auth := nuevoAuth(t)
	resp, err := auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 7200, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.Username)

	claims := &service.Claims{}
	tok, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.True(t, tok.Valid)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	auth := nuevoAuth(t)
	casos := []dto.LoginRequest{
		{Username: "admin", Password: "otra"},
		{Username: "root", Password: "secreta"},
		{Username: "", Password: ""},
	}
	for _, c := range casos {
		_, err := auth.Login(context.Background(), c)
		assert.ErrorIs(t, err, service.ErrCredenciales)
	}
}
