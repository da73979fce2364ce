package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jwttoken "taskdeck/internal/jwt_token"
	dErrors "taskdeck/pkg/domain-errors"
	"taskdeck/pkg/platform/sentinel"
)

// AccessTokenTTL bounds how long an issued token stays valid. Revocation on
// logout covers the window in between.
const AccessTokenTTL = 8 * time.Hour

// RevocationList tracks revoked token jtis until their natural expiry.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service resolves credentials into signed identity tokens.
type Service struct {
	users  UserStore
	tokens *jwttoken.Service
	trl    RevocationList
	logger *slog.Logger
}

func NewService(users UserStore, tokens *jwttoken.Service, trl RevocationList, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, trl: trl, logger: logger}
}

// Login verifies the credentials and issues an access token carrying the
// identity context (user, role, organization). Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(
		uuid.UUID(user.ID),
		user.Email,
		user.Role.String(),
		uuid.UUID(user.OrganizationID),
		AccessTokenTTL,
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID.String(),
		"role", user.Role.String(),
	)

	return &LoginResult{
		AccessToken: token,
		User: PublicUser{
			ID:             user.ID,
			Email:          user.Email,
			Role:           user.Role,
			OrganizationID: user.OrganizationID,
		},
	}, nil
}

// Logout revokes the presented token's jti for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if jti == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "no token to revoke")
	}
	if err := s.trl.Revoke(ctx, jti, remaining); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	return nil
}
