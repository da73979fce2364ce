// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware and consumed by services. Keeping this package
// free of net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	identity := requestcontext.Identity(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithIdentity(ctx, ident)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "taskdeck/pkg/domain"
)

// Caller is the per-request identity resolved by the authentication layer.
// The orchestrator never derives this itself.
type Caller struct {
	UserID id.UserID
	Email  string
	Role   id.Role
	OrgID  id.OrgID
}

// Context key types (unexported for encapsulation).
type (
	callerKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	tokenIDKey     struct{}
	tokenExpiryKey struct{}
)

// Identity retrieves the authenticated caller from the context.
// Returns the zero Caller if not set.
func Identity(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Caller{}
}

// WithIdentity injects the authenticated caller into the context.
func WithIdentity(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// TokenID retrieves the JWT jti of the presented token, set by the auth
// middleware and consumed by logout.
func TokenID(ctx context.Context) string {
	if jti, ok := ctx.Value(tokenIDKey{}).(string); ok {
		return jti
	}
	return ""
}

// WithTokenID injects a token jti into the context.
func WithTokenID(ctx context.Context, jti string) context.Context {
	return context.WithValue(ctx, tokenIDKey{}, jti)
}

// TokenExpiry retrieves the expiry of the presented token, set by the auth
// middleware. Logout uses it to bound the revocation TTL to the token's
// remaining lifetime. Returns the zero time if not set.
func TokenExpiry(ctx context.Context) time.Time {
	if t, ok := ctx.Value(tokenExpiryKey{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}

// WithTokenExpiry injects the presented token's expiry into the context.
func WithTokenExpiry(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, tokenExpiryKey{}, t)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context. Useful for service unit
// tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
