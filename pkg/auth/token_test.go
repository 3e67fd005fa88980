package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sharkleaf/backend/pkg/config"
	"github.com/sharkleaf/backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "sharkleaf-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	customerID := uuid.New()
	payload := AccessTokenPayload{
		UserID:     uuid.New(),
		CustomerID: &customerID,
		Role:       enums.UserRoleCustomer,
		JTI:        "jti-123",
	}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id mismatch: got %s want %s", claims.UserID, payload.UserID)
	}
	if claims.CustomerID == nil || *claims.CustomerID != customerID {
		t.Fatalf("customer id mismatch: got %v", claims.CustomerID)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("role mismatch: got %s", claims.Role)
	}
	if claims.ID != "jti-123" {
		t.Fatalf("jti mismatch: got %s", claims.ID)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	wrong := cfg
	wrong.Secret = "other-secret"
	if _, err := ParseAccessToken(wrong, signed); err == nil {
		t.Fatal("expected parse to fail with the wrong secret")
	}
}

func TestMintAccessTokenRejectsInvalidRole(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRole("GARDENER"),
	}); err == nil {
		t.Fatal("expected invalid role to be rejected")
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
		JTI:    "expired-jti",
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail strict parse")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessTokenAllowExpired returned error: %v", err)
	}
	if claims.ID != "expired-jti" {
		t.Fatalf("jti mismatch: got %s", claims.ID)
	}
}
