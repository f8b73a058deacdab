package auth

import (
	"context"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/models"
	"gamehub/backend/pkg/jwt"
)

const accountKeyPrefix = "account:"

// Sessions issues and verifies bearer tokens.
type Sessions struct {
	issuer  *jwt.Issuer
	revoked Denylist
}

func NewSessions(issuer *jwt.Issuer, revoked Denylist) *Sessions {
	if revoked == nil {
		revoked = NewMemoryDenylist()
	}
	return &Sessions{issuer: issuer, revoked: revoked}
}

// Issue returns a signed token embedding the user's id, username and role.
func (s *Sessions) Issue(u models.User) (string, error) {
	token, _, err := s.issuer.GenerateToken(u.ID, u.Username, string(u.Role), u.SessionKey)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "Failed to generate token")
	}
	return token, nil
}

// Verify fails with Unauthorized when token is empty and Forbidden when it is
// invalid, expired or revoked.
func (s *Sessions) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, apperr.New(apperr.Unauthorized, "Access token required")
	}

	claims, err := s.issuer.ParseToken(token)
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.Forbidden, err, "Invalid or expired token")
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err == nil && !revoked && claims.SessionKey != "" {
		revoked, err = s.revoked.IsRevoked(ctx, accountKeyPrefix+claims.SessionKey)
	}
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.Internal, err, "Failed to verify token")
	}
	if revoked {
		return Identity{}, apperr.New(apperr.Forbidden, "Invalid or expired token")
	}

	return Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     models.Role(claims.Role),
	}, nil
}

// Revoke invalidates token until its natural expiry.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	claims, err := s.issuer.ParseToken(token)
	if err != nil {
		return apperr.Wrap(apperr.Forbidden, err, "Invalid or expired token")
	}

	until := time.Now()
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, until); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Failed to log out")
	}
	return nil
}

// RevokeAccount invalidates every token issued with sessionKey.
func (s *Sessions) RevokeAccount(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return nil
	}
	until := time.Now().Add(s.issuer.TTL())
	if err := s.revoked.Revoke(ctx, accountKeyPrefix+sessionKey, until); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Failed to revoke sessions")
	}
	return nil
}
