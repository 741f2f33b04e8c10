package services

import (
	"os"
	"testing"
	"time"

	"main/utils"

	"github.com/golang-jwt/jwt/v5"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
}

func TestTokenRoundTrip(t *testing.T) {
	initTestJWT(t)

	token, err := GenerateToken("user-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("user ID = %q, want user-42", userID)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	initTestJWT(t)

	signed := func(claims jwt.MapClaims, secret string) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}

	now := time.Now()
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"user_id": "user-42",
			"iss":     "questday",
			"iat":     now.Unix(),
			"exp":     now.Add(time.Hour).Unix(),
		}
	}

	t.Run("tampered token", func(t *testing.T) {
		token, err := GenerateToken("user-42")
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if _, err := ValidateToken(token + "x"); err == nil {
			t.Error("tampered token should not validate")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := ValidateToken(signed(base(), "someone-elses-secret")); err == nil {
			t.Error("foreign signature should not validate")
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := base()
		claims["iss"] = "someone-else"
		if _, err := ValidateToken(signed(claims, utils.JWTSecretKey)); err == nil {
			t.Error("foreign issuer should not validate")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		claims := base()
		claims["exp"] = now.Add(-time.Hour).Unix()
		if _, err := ValidateToken(signed(claims, utils.JWTSecretKey)); err == nil {
			t.Error("expired token should not validate")
		}
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := base()
		delete(claims, "exp")
		if _, err := ValidateToken(signed(claims, utils.JWTSecretKey)); err == nil {
			t.Error("token without expiry should not validate")
		}
	})

	t.Run("missing user ID", func(t *testing.T) {
		claims := base()
		delete(claims, "user_id")
		if _, err := ValidateToken(signed(claims, utils.JWTSecretKey)); err == nil {
			t.Error("token without user ID should not validate")
		}
	})
}
