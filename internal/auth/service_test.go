package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"taskdeck/internal/auth/store/revocation"
	jwttoken "taskdeck/internal/jwt_token"
	id "taskdeck/pkg/domain"
	dErrors "taskdeck/pkg/domain-errors"
)

type AuthServiceSuite struct {
	suite.Suite
	users   *InMemoryUserStore
	trl     *revocation.InMemoryList
	tokens  *jwttoken.Service
	service *Service

	orgID id.OrgID
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.users = NewInMemoryUserStore()
	s.trl = revocation.NewInMemoryList()
	s.tokens = jwttoken.NewService("test-signing-key", "test-issuer")
	s.service = NewService(s.users, s.tokens, s.trl, logger)
	s.orgID = id.NewOrgID()
}

func (s *AuthServiceSuite) seedUser(email, password string, role id.Role) *User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.Require().NoError(err)
	user := &User{
		ID:             id.NewUserID(),
		Email:          email,
		PasswordHash:   string(hash),
		Role:           role,
		OrganizationID: s.orgID,
		CreatedAt:      time.Now(),
	}
	s.Require().NoError(s.users.Create(context.Background(), user))
	return user
}

func (s *AuthServiceSuite) TestLogin() {
	ctx := context.Background()

	s.Run("valid credentials issue a token carrying identity", func() {
		user := s.seedUser("owner@example.com", "owner123", id.RoleOwner)

		result, err := s.service.Login(ctx, "owner@example.com", "owner123")
		s.Require().NoError(err)
		s.NotEmpty(result.AccessToken)
		s.Equal(user.ID, result.User.ID)
		s.Equal(id.RoleOwner, result.User.Role)
		s.Equal(s.orgID, result.User.OrganizationID)

		claims, err := s.tokens.ValidateToken(result.AccessToken)
		s.Require().NoError(err)
		s.Equal(user.ID.String(), claims.Subject)
		s.Equal("owner", claims.Role)
		s.Equal(s.orgID.String(), claims.OrgID)
		s.NotEmpty(claims.ID)
	})

	s.Run("email match is case-insensitive and trimmed", func() {
		s.seedUser("admin@example.com", "admin123", id.RoleAdmin)

		result, err := s.service.Login(ctx, "  Admin@Example.COM ", "admin123")
		s.Require().NoError(err)
		s.Equal(id.RoleAdmin, result.User.Role)
	})

	s.Run("wrong password is invalid credentials", func() {
		s.seedUser("viewer@example.com", "viewer123", id.RoleViewer)

		_, err := s.service.Login(ctx, "viewer@example.com", "wrong")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Contains(err.Error(), "Invalid credentials")
	})

	s.Run("unknown email is indistinguishable from wrong password", func() {
		_, err := s.service.Login(ctx, "nobody@example.com", "whatever")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Contains(err.Error(), "Invalid credentials")
	})

	s.Run("empty credentials are rejected without a store lookup", func() {
		_, err := s.service.Login(ctx, "", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *AuthServiceSuite) TestLogout() {
	ctx := context.Background()

	s.Run("revokes the presented jti", func() {
		s.Require().NoError(s.service.Logout(ctx, "some-jti", time.Hour))

		revoked, err := s.trl.IsRevoked(ctx, "some-jti")
		s.Require().NoError(err)
		s.True(revoked)
	})

	s.Run("missing jti is unauthorized", func() {
		err := s.service.Logout(ctx, "", time.Hour)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
