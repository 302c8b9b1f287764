package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc := testService(time.Hour)
	user := &models.User{ID: 42, Email: "anna@example.com"}

	access, refresh, expiresIn, err := svc.GenerateTokenPair(user, []models.Role{models.RoleStudent, models.RoleParent})
	if err != nil {
		t.Fatal(err)
	}
	if refresh == "" {
		t.Fatal("expected a refresh token")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Email != "anna@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.HasRole(models.RoleStudent) || !claims.HasRole(models.RoleParent) {
		t.Error("expected student and parent roles in claims")
	}
	if claims.HasRole(models.RoleAdministrator) {
		t.Error("unexpected administrator role in claims")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testService(-time.Minute)
	access, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Email: "a@b.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateToken(access); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	access, _, _, err := testService(time.Hour).GenerateTokenPair(&models.User{ID: 1, Email: "a@b.com"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "another-secret", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(access); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatal(err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("got %q", token)
	}

	if _, err := ExtractBearerToken(""); err == nil {
		t.Error("empty header should fail")
	}
}
