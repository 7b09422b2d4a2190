package util

import (
	"testing"
	"time"

	"sical_backend/internal/model"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Email: "alice@example.com", Role: model.Teacher}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("Role = %s, want teacher", claims.Role)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %s", claims.Email)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Email: "bob@example.com", Role: model.Student}
	user.ID = 7

	token, err := GenerateJWT(user, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "secret-b"); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Email: "carol@example.com", Role: model.Student}
	user.ID = 9

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

// 解析失败时调用方依赖非nil错误判断，claims为nil而err也为nil会放行空身份
func TestParseJWTNeverReturnsNilClaimsWithNilError(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b.c", "..", "eyJhbGciOiJub25lIn0.e30."} {
		claims, err := ParseJWT(token, "test-secret")
		if claims == nil && err == nil {
			t.Errorf("ParseJWT(%q) = (nil, nil)", token)
		}
		if claims != nil {
			t.Errorf("ParseJWT(%q) returned claims for an invalid token", token)
		}
	}
}

func TestIsContentManager(t *testing.T) {
	tests := []struct {
		name   string
		claims *Claims
		want   bool
	}{
		{"nil claims", nil, false},
		{"student", &Claims{Role: model.Student}, false},
		{"teacher", &Claims{Role: model.Teacher}, true},
		{"admin", &Claims{Role: model.Admin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContentManager(tt.claims); got != tt.want {
				t.Errorf("IsContentManager() = %v, want %v", got, tt.want)
			}
		})
	}
}
