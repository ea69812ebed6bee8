package services_test

import (
	"testing"
	"time"

	"packpall-backend/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	token, err := svc.Issue("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenService_EmptyToken(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	_, err := svc.Verify("")
	assert.Error(t, err)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	_, err := svc.Verify("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := services.NewTokenService("secret-a")
	verifier := services.NewTokenService("secret-b")

	token, err := issuer.Issue("user-123")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	claims := jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Verify(expired)
	assert.Error(t, err)
}

func TestTokenService_MissingSubject(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}
