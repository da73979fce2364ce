package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	jwttoken "taskdeck/internal/jwt_token"
	id "taskdeck/pkg/domain"
	"taskdeck/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// RevocationChecker reports whether a token jti has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// writeJSONError writes a JSON error response with the given status code.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","message":"%s"}`, errCode, errDesc))
}

// RequireAuth validates the bearer token, checks revocation, and resolves the
// identity context (user, role, organization) for downstream services. The
// orchestrator never derives identity itself.
func RequireAuth(validator JWTValidator, revocation RevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			if revocation != nil {
				revoked, err := revocation.IsRevoked(ctx, claims.ID)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token revocation",
						"error", err,
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusInternalServerError, "internal", "Failed to validate token")
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - token revoked",
						"jti", claims.ID,
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
					return
				}
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed claims",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid token claims")
				return
			}

			ctx = requestcontext.WithIdentity(ctx, caller)
			ctx = requestcontext.WithTokenID(ctx, claims.ID)
			if claims.ExpiresAt != nil {
				ctx = requestcontext.WithTokenExpiry(ctx, claims.ExpiresAt.Time)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerFromClaims(claims *jwttoken.Claims) (requestcontext.Caller, error) {
	userID, err := id.ParseUserID(claims.Subject)
	if err != nil {
		return requestcontext.Caller{}, err
	}
	role, err := id.ParseRole(claims.Role)
	if err != nil {
		return requestcontext.Caller{}, err
	}
	orgID, err := id.ParseOrgID(claims.OrgID)
	if err != nil {
		return requestcontext.Caller{}, err
	}
	return requestcontext.Caller{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
		OrgID:  orgID,
	}, nil
}
