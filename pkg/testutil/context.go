package testutil

import (
	"net/http"
	"time"

	id "taskdeck/pkg/domain"
	"taskdeck/pkg/requestcontext"
)

// NewCaller builds an authenticated caller with a fresh user in the given
// organization.
func NewCaller(role id.Role, orgID id.OrgID) requestcontext.Caller {
	return requestcontext.Caller{
		UserID: id.NewUserID(),
		Email:  role.String() + "@example.com",
		Role:   role,
		OrgID:  orgID,
	}
}

// WithCaller injects an authenticated caller into the request context,
// simulating what the auth middleware does for a valid token.
func WithCaller(req *http.Request, caller requestcontext.Caller) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), caller))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
