package domain_test

import (
	"testing"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestApprovalStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.ApprovalStatus
		to     domain.ApprovalStatus
		want   bool
	}{
		{name: "pending to approved", from: domain.StatusPending, to: domain.StatusApproved, want: true},
		{name: "pending to rejected", from: domain.StatusPending, to: domain.StatusRejected, want: true},
		{name: "pending cannot skip to converted", from: domain.StatusPending, to: domain.StatusConverted, want: false},
		{name: "pending cannot skip to settled", from: domain.StatusPending, to: domain.StatusSettled, want: false},
		{name: "approved to converted", from: domain.StatusApproved, to: domain.StatusConverted, want: true},
		{name: "approved to settled", from: domain.StatusApproved, to: domain.StatusSettled, want: true},
		{name: "no un-approving", from: domain.StatusApproved, to: domain.StatusPending, want: false},
		{name: "no un-rejecting", from: domain.StatusRejected, to: domain.StatusPending, want: false},
		{name: "rejected is final", from: domain.StatusRejected, to: domain.StatusApproved, want: false},
		{name: "converted is final", from: domain.StatusConverted, to: domain.StatusSettled, want: false},
		{name: "settled is final", from: domain.StatusSettled, to: domain.StatusApproved, want: false},
		{name: "no self transition", from: domain.StatusPending, to: domain.StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestApprovalStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusApproved.IsTerminal(), "approved records may still convert or settle")

	assert.True(t, domain.StatusRejected.IsTerminal())
	assert.True(t, domain.StatusConverted.IsTerminal())
	assert.True(t, domain.StatusSettled.IsTerminal())
}

func TestApprovalStatus_IsValid(t *testing.T) {
	valid := []domain.ApprovalStatus{
		domain.StatusPending,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusConverted,
		domain.StatusSettled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}

	assert.False(t, domain.ApprovalStatus("").IsValid())
	assert.False(t, domain.ApprovalStatus("pending").IsValid(), "statuses are case sensitive")
	assert.False(t, domain.ApprovalStatus("CANCELLED").IsValid())
}
