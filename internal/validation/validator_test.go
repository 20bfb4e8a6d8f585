package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/campushub/campus-server/internal/errors"
)

type createBookingRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Start    string `json:"start" validate:"required"`
	Duration int    `json:"duration_minutes" validate:"required,gt=0"`
	BookedBy string `json:"booked_by" validate:"required,max=100"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(createBookingRequest{
		Date:     "2026-09-01",
		Start:    "10:00",
		Duration: 60,
		BookedBy: "Ana",
	})
	require.NoError(t, err)
}

func TestValidate_FailsWithFieldDetails(t *testing.T) {
	v := New()

	err := v.Validate(createBookingRequest{
		Date:     "September 1st",
		Duration: -30,
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Details are keyed by JSON field names, not Go field names.
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "duration_minutes")
	assert.Contains(t, fields, "start")
	assert.Contains(t, fields, "booked_by")
}

func TestValidate_EmailTag(t *testing.T) {
	v := New()

	type loginRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	require.NoError(t, v.Validate(loginRequest{Email: "ana@campus.edu"}))

	err := v.Validate(loginRequest{Email: "not-an-email"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	fields := domainErr.Details.(map[string]string)
	assert.Equal(t, "must be a valid email address", fields["email"])
}
