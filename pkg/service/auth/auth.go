// Package auth resolves the authenticated investor from the request's JWT
// and issues tokens for development tooling. User management itself lives in
// the upstream identity backend.
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propvest/propvest/pkg/config"
)

// ErrUnauthorized is returned when no valid identity can be derived from the
// presented token.
var ErrUnauthorized = errors.New("unauthorized")

// Service reads and writes the HS256 tokens the API trusts.
type Service struct {
	cfg    *config.Jwt
	logger *slog.Logger
}

// New wires an auth service.
func New(cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// GetCurrentUserID extracts the investor id from a verified token. The token
// comes from the JWT middleware, which has already checked the signature.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	log := s.logger.With("context", "GetCurrentUserID")
	if token == nil {
		log.Error("no token on request")
		return uuid.Nil, ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		log.Error("unexpected claims type")
		return uuid.Nil, ErrUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		log.Error("user_id claim missing")
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		log.Error("user_id claim is not a uuid", "error", err)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

// GenerateToken signs a token for the given investor. Used by seed scripts
// and tests; production tokens come from the identity backend with the same
// shared secret.
func (s *Service) GenerateToken(userID uuid.UUID, email string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID.String()
	claims["email"] = email
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("signing token failed", "user_id", userID, "error", err)
		return "", err
	}
	return signed, nil
}
