package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Status   string `json:"status" validate:"omitempty,candidate_status"`
	JobState string `json:"job_status" validate:"job_status"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "a@b.co", Password: "abcdef12", Status: "hired", JobState: "draft"})
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()
	err := v.Validate(&sample{Email: "nope", Password: "short", Status: "maybe", JobState: "archived"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors, "password")
	assert.Equal(t, "Must be one of: new, reviewing, shortlisted, rejected, hired", vErr.Errors["status"])
	assert.Equal(t, "Must be one of: active, closed, draft", vErr.Errors["job_status"])
}
