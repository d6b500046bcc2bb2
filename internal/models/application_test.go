// internal/models/application_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func subs(statuses ...SubmissionStatus) []LenderSubmission {
	out := make([]LenderSubmission, len(statuses))
	for i, s := range statuses {
		out[i] = LenderSubmission{LenderID: string(rune('a' + i)), Status: s}
	}
	return out
}

func TestDeriveApplicationStatus_FundedWinsOverEverything(t *testing.T) {
	cases := [][]SubmissionStatus{
		{SubmissionStatusFunded},
		{SubmissionStatusDeclined, SubmissionStatusFunded},
		{SubmissionStatusApproved, SubmissionStatusFunded, SubmissionStatusUnderReview},
		{SubmissionStatusFunded, SubmissionStatusDeclined, SubmissionStatusDeclined},
	}

	for _, c := range cases {
		got := DeriveApplicationStatus(subs(c...), SubmissionStatusUnderReview)
		assert.Equal(t, SubmissionStatusFunded, got, "statuses %v", c)
	}
}

func TestDeriveApplicationStatus_ApprovedBeatsDeclinedAndReview(t *testing.T) {
	got := DeriveApplicationStatus(subs(
		SubmissionStatusDeclined,
		SubmissionStatusApproved,
		SubmissionStatusUnderReview,
	), SubmissionStatusUnderReview)
	assert.Equal(t, SubmissionStatusApproved, got)
}

func TestDeriveApplicationStatus_AllDeclined(t *testing.T) {
	got := DeriveApplicationStatus(subs(
		SubmissionStatusDeclined,
		SubmissionStatusDeclined,
	), SubmissionStatusUnderReview)
	assert.Equal(t, SubmissionStatusDeclined, got)
}

func TestDeriveApplicationStatus_DefaultsToUnderReview(t *testing.T) {
	// Empty set resolves to under_review.
	assert.Equal(t, SubmissionStatusUnderReview,
		DeriveApplicationStatus(nil, SubmissionStatusUnderReview))

	// Mixed declined/under_review is still under_review.
	got := DeriveApplicationStatus(subs(
		SubmissionStatusDeclined,
		SubmissionStatusUnderReview,
	), SubmissionStatusUnderReview)
	assert.Equal(t, SubmissionStatusUnderReview, got)
}

func TestDeriveApplicationStatus_FundedIsSticky(t *testing.T) {
	// Once funded, later changes to other submissions never recompute the
	// application away from funded.
	got := DeriveApplicationStatus(subs(
		SubmissionStatusDeclined,
		SubmissionStatusDeclined,
	), SubmissionStatusFunded)
	assert.Equal(t, SubmissionStatusFunded, got)
}

func TestDeriveApplicationStatus_OrderIndependent(t *testing.T) {
	a := subs(SubmissionStatusDeclined, SubmissionStatusApproved, SubmissionStatusUnderReview)
	b := subs(SubmissionStatusUnderReview, SubmissionStatusDeclined, SubmissionStatusApproved)

	assert.Equal(t,
		DeriveApplicationStatus(a, SubmissionStatusUnderReview),
		DeriveApplicationStatus(b, SubmissionStatusUnderReview))
}

func TestFormatApplicationID(t *testing.T) {
	assert.Equal(t, "APP-2024-001", FormatApplicationID(2024, 1))
	assert.Equal(t, "APP-2024-045", FormatApplicationID(2024, 45))
	assert.Equal(t, "APP-2025-1000", FormatApplicationID(2025, 1000))
}

func TestSubmissionApprovedAmountTreatsNilAsZero(t *testing.T) {
	var s LenderSubmission
	assert.EqualValues(t, 0, s.ApprovedAmount())

	amount := int64(65000)
	s.ApprovalAmount = &amount
	assert.EqualValues(t, 65000, s.ApprovedAmount())
}
