package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memoryTokenRepository struct {
	tokens      map[string]time.Time
	invalidated map[string]bool
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{tokens: map[string]time.Time{}, invalidated: map[string]bool{}}
}

func (r *memoryTokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	r.tokens[token] = expiresAt
	return nil
}

func (r *memoryTokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	expiresAt, ok := r.tokens[token]
	return ok && !r.invalidated[token] && expiresAt.After(time.Now()), nil
}

func (r *memoryTokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	r.invalidated[token] = true
	return nil
}

func (r *memoryTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for token, expiresAt := range r.tokens {
		if expiresAt.Before(now) {
			delete(r.tokens, token)
			n++
		}
	}
	return n, nil
}

func TestTokenService(t *testing.T) {
	repo := newMemoryTokenRepository()
	service := NewTokenService("test-secret", repo)
	userID := uuid.New()
	ctx := context.Background()

	pair, err := service.GenerateTokenPair(ctx, userID, "driver", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := service.ValidateAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("expected valid access token, got %v", err)
	}
	if claims.UserID != userID || claims.Username != "driver" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := service.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
		t.Error("expected refresh token to be rejected as access token")
	}
	if _, err := service.ValidateRefreshToken(ctx, pair.AccessToken); err == nil {
		t.Error("expected access token to be rejected as refresh token")
	}

	valid, _ := service.IsRefreshTokenValid(ctx, pair.RefreshToken)
	if !valid {
		t.Error("expected stored refresh token to be valid")
	}
	if err := service.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	valid, _ = service.IsRefreshTokenValid(ctx, pair.RefreshToken)
	if valid {
		t.Error("expected invalidated refresh token to be rejected")
	}

	other := NewTokenService("other-secret", repo)
	if _, err := other.ValidateAccessToken(ctx, pair.AccessToken); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}

	purged, err := service.PurgeExpiredTokens(ctx, time.Now().Add(31*24*time.Hour))
	if err != nil || purged != 1 {
		t.Errorf("expected 1 purged token, got %d %v", purged, err)
	}
}
