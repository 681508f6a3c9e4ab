package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestTokenPairRoundTrip проверяет выпуск и разбор пары токенов.
func TestTokenPairRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "travel-buddy", time.Minute, time.Hour)
	userID := uuid.New()
	refreshID := uuid.New()

	pair, err := manager.NewTokenPair(userID, refreshID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("subject = %s, want %s", claims.Subject, userID)
	}

	claims, err = manager.ParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if claims.ID != refreshID.String() {
		t.Fatalf("token id = %s, want %s", claims.ID, refreshID)
	}

	// Access-токен не должен проходить как refresh и наоборот.
	if _, err := manager.ParseRefreshToken(pair.AccessToken); err == nil {
		t.Fatal("expected type mismatch for access token")
	}
	if _, err := manager.ParseAccessToken(pair.RefreshToken); err == nil {
		t.Fatal("expected type mismatch for refresh token")
	}
}

// TestCompareTokenHash проверяет сравнение хэша токена.
func TestCompareTokenHash(t *testing.T) {
	hash := HashToken("abc")

	if !CompareTokenHash(hash, "abc") {
		t.Fatal("expected hash to match")
	}
	if CompareTokenHash(hash, "abd") {
		t.Fatal("expected hash mismatch")
	}
}
