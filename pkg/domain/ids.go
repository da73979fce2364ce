package domain

import (
	"github.com/google/uuid"

	dErrors "taskdeck/pkg/domain-errors"
)

// Typed IDs prevent cross-entity assignment at compile time. Construct from
// external input via the Parse* functions so the non-nil invariant holds.
type (
	UserID uuid.UUID
	OrgID  uuid.UUID
	TaskID uuid.UUID
)

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id OrgID) String() string  { return uuid.UUID(id).String() }
func (id TaskID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id OrgID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id TaskID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewUserID returns a fresh random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewOrgID returns a fresh random organization ID.
func NewOrgID() OrgID { return OrgID(uuid.New()) }

// NewTaskID returns a fresh random task ID.
func NewTaskID() TaskID { return TaskID(uuid.New()) }

// ParseUserID validates external input into a UserID.
// Errors: CodeValidation when the value is empty, malformed, or the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseOrgID validates external input into an OrgID.
func ParseOrgID(s string) (OrgID, error) {
	u, err := parseUUID(s, "organization id")
	if err != nil {
		return OrgID{}, err
	}
	return OrgID(u), nil
}

// ParseTaskID validates external input into a TaskID.
func ParseTaskID(s string) (TaskID, error) {
	u, err := parseUUID(s, "task id")
	if err != nil {
		return TaskID{}, err
	}
	return TaskID(u), nil
}

// Text marshaling so typed IDs serialize as canonical UUID strings in JSON
// rather than raw byte arrays.

func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id OrgID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id TaskID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id *OrgID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = OrgID(u)
	return nil
}

func (id *TaskID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = TaskID(u)
	return nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "invalid %s", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s cannot be nil", what)
	}
	return u, nil
}
