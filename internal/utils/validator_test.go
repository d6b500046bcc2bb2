// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slugHolder struct {
	Slug string `validate:"lender_slug"`
}

type statusHolder struct {
	Status string `validate:"submission_status"`
}

func TestLenderSlugRule(t *testing.T) {
	valid := []string{"rapid-capital", "quick-cash", "a1", "premier-funding-2"}
	for _, s := range valid {
		assert.NoError(t, ValidateStruct(&slugHolder{Slug: s}), s)
	}

	invalid := []string{"", "a", "Rapid-Capital", "rapid_capital", "rapid capital", "-leading", "trailing-"}
	for _, s := range invalid {
		assert.Error(t, ValidateStruct(&slugHolder{Slug: s}), s)
	}
}

func TestSubmissionStatusRule(t *testing.T) {
	for _, s := range []string{"under_review", "approved", "declined", "funded"} {
		assert.NoError(t, ValidateStruct(&statusHolder{Status: s}), s)
	}
	for _, s := range []string{"", "pending", "UNDER_REVIEW", "escalated"} {
		assert.Error(t, ValidateStruct(&statusHolder{Status: s}), s)
	}
}

func TestValidationErrorMessages(t *testing.T) {
	err := ValidateStruct(&statusHolder{Status: "pending"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "status", errs[0].Field)
	assert.Equal(t, "submission_status", errs[0].Tag)
	assert.Contains(t, errs[0].Message, "under_review")
}
