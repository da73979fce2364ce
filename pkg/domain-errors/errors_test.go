package domainerrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeForbidden, "not allowed")
	assert.True(t, HasCode(err, CodeForbidden))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeForbidden))
	assert.False(t, HasCode(nil, CodeForbidden))
}

func TestNewf(t *testing.T) {
	err := Newf(CodeValidation, "invalid %s", "task id")
	assert.True(t, HasCode(err, CodeValidation))
	assert.Equal(t, "invalid task id", MessageOf(err))
}

func TestWrap(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(cause, CodeInternal, "failed to create task")

	assert.True(t, HasCode(err, CodeInternal))
	assert.ErrorIs(t, err, cause, "the cause stays reachable for logging")
	assert.Equal(t, "failed to create task", MessageOf(err), "the cause never leaks into the message")

	assert.Nil(t, Wrap(nil, CodeInternal, "no-op"))
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad input")))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Task not found", MessageOf(New(CodeNotFound, "Task not found")))
	assert.Equal(t, "internal error", MessageOf(errors.New("secret detail")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:     http.StatusNotFound,
		CodeForbidden:    http.StatusForbidden,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeValidation:   http.StatusBadRequest,
		CodeConflict:     http.StatusConflict,
		CodeConfig:       http.StatusInternalServerError,
		CodeInternal:     http.StatusInternalServerError,
		Code("unknown"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
