package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDreamStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to DreamStatus }{
		{DreamStatusNew, DreamStatusPendingInquiry},
		{DreamStatusNew, DreamStatusPendingInterpretation},
		{DreamStatusPendingInquiry, DreamStatusPendingInterpretation},
		{DreamStatusPendingInquiry, DreamStatusReturned},
		{DreamStatusPendingInterpretation, DreamStatusInterpreted},
		{DreamStatusPendingInterpretation, DreamStatusReturned},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to DreamStatus }{
		{DreamStatusNew, DreamStatusInterpreted},
		{DreamStatusInterpreted, DreamStatusNew},
		{DreamStatusInterpreted, DreamStatusPendingInterpretation},
		{DreamStatusReturned, DreamStatusInterpreted},
		{DreamStatusNew, DreamStatusNew},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, RequestStatusOpen.CanTransitionTo(RequestStatusAssigned))
	assert.True(t, RequestStatusOpen.CanTransitionTo(RequestStatusCancelled))
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusAccepted))
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusRejected))
	assert.True(t, RequestStatusAssigned.CanTransitionTo(RequestStatusInProgress))
	assert.True(t, RequestStatusInProgress.CanTransitionTo(RequestStatusCompleted))

	// terminal states have no exits
	for _, terminal := range []RequestStatus{RequestStatusCompleted, RequestStatusCancelled, RequestStatusRejected} {
		for _, to := range []RequestStatus{RequestStatusOpen, RequestStatusPending, RequestStatusAssigned, RequestStatusInProgress, RequestStatusCompleted} {
			assert.False(t, terminal.CanTransitionTo(to), "%s -> %s should be denied", terminal, to)
		}
	}

	assert.False(t, RequestStatusOpen.CanTransitionTo(RequestStatusCompleted))
	assert.False(t, RequestStatusAccepted.CanTransitionTo(RequestStatusInProgress))
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, RoleAdmin.IsElevated())
	assert.True(t, RoleSuperAdmin.IsElevated())
	assert.False(t, RoleDreamer.IsElevated())
	assert.False(t, RoleInterpreter.IsElevated())

	assert.True(t, SelfServiceRole(RoleDreamer))
	assert.True(t, SelfServiceRole(RoleInterpreter))
	assert.False(t, SelfServiceRole(RoleAdmin))
	assert.False(t, SelfServiceRole(RoleSuperAdmin))
}
