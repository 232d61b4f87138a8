package auth

import (
	"testing"

	"rooya_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCanAssignInterpreter(t *testing.T) {
	assert.False(t, CanAssignInterpreter(models.RoleDreamer))
	assert.False(t, CanAssignInterpreter(models.RoleInterpreter))
	assert.True(t, CanAssignInterpreter(models.RoleAdmin))
	assert.True(t, CanAssignInterpreter(models.RoleSuperAdmin))
}

func TestCanViewDream(t *testing.T) {
	dream := &models.Dream{DreamerID: "owner", InterpreterID: strPtr("interp")}

	assert.True(t, CanViewDream(models.RoleDreamer, "owner", dream))
	assert.True(t, CanViewDream(models.RoleInterpreter, "interp", dream))
	assert.True(t, CanViewDream(models.RoleAdmin, "someone-else", dream))
	assert.False(t, CanViewDream(models.RoleDreamer, "stranger", dream))
	assert.False(t, CanViewDream(models.RoleInterpreter, "other-interp", dream))
}

func TestCanEditInterpretation(t *testing.T) {
	unassigned := &models.Dream{DreamerID: "owner"}
	assigned := &models.Dream{DreamerID: "owner", InterpreterID: strPtr("interp")}

	assert.False(t, CanEditInterpretation(models.RoleInterpreter, "interp", unassigned))
	assert.True(t, CanEditInterpretation(models.RoleInterpreter, "interp", assigned))
	assert.False(t, CanEditInterpretation(models.RoleInterpreter, "other-interp", assigned))

	// admin may assign but not write interpretation text
	assert.False(t, CanEditInterpretation(models.RoleAdmin, "admin", assigned))
	assert.True(t, CanEditInterpretation(models.RoleSuperAdmin, "root", assigned))

	assert.False(t, CanEditInterpretation(models.RoleDreamer, "owner", assigned))
}

func TestCanMessageOnDream(t *testing.T) {
	unassigned := &models.Dream{DreamerID: "owner"}
	assigned := &models.Dream{DreamerID: "owner", InterpreterID: strPtr("interp")}

	// closed for everyone but super_admin until assignment
	assert.False(t, CanMessageOnDream(models.RoleDreamer, "owner", unassigned))
	assert.False(t, CanMessageOnDream(models.RoleAdmin, "admin", unassigned))
	assert.True(t, CanMessageOnDream(models.RoleSuperAdmin, "root", unassigned))

	assert.True(t, CanMessageOnDream(models.RoleDreamer, "owner", assigned))
	assert.True(t, CanMessageOnDream(models.RoleInterpreter, "interp", assigned))
	assert.True(t, CanMessageOnDream(models.RoleAdmin, "admin", assigned))
	assert.False(t, CanMessageOnDream(models.RoleDreamer, "stranger", assigned))
}

func TestCanChatOnRequest(t *testing.T) {
	open := &models.Request{DreamerID: "owner"}
	taken := &models.Request{DreamerID: "owner", InterpreterID: strPtr("interp")}

	assert.False(t, CanChatOnRequest(models.RoleDreamer, "owner", open))
	assert.True(t, CanChatOnRequest(models.RoleDreamer, "owner", taken))
	assert.True(t, CanChatOnRequest(models.RoleInterpreter, "interp", taken))
	assert.False(t, CanChatOnRequest(models.RoleInterpreter, "other", taken))
}

func TestCanEditNotes(t *testing.T) {
	dream := &models.Dream{DreamerID: "owner", InterpreterID: strPtr("interp")}

	assert.True(t, CanEditNotes(models.RoleDreamer, "owner", dream))
	assert.False(t, CanEditNotes(models.RoleInterpreter, "interp", dream))
	assert.False(t, CanEditNotes(models.RoleAdmin, "admin", dream))
	assert.True(t, CanEditNotes(models.RoleSuperAdmin, "root", dream))
}

func TestCanDeleteMessage(t *testing.T) {
	msg := &models.Message{SenderID: "sender"}

	assert.True(t, CanDeleteMessage(models.RoleDreamer, "sender", msg))
	assert.False(t, CanDeleteMessage(models.RoleAdmin, "admin", msg))
	assert.True(t, CanDeleteMessage(models.RoleSuperAdmin, "root", msg))
}

func TestCanDeleteDream(t *testing.T) {
	dream := &models.Dream{DreamerID: "owner"}

	assert.True(t, CanDeleteDream(models.RoleDreamer, "owner", dream))
	assert.False(t, CanDeleteDream(models.RoleDreamer, "stranger", dream))
	assert.True(t, CanDeleteDream(models.RoleAdmin, "admin", dream))
}

func TestBypassesQuota(t *testing.T) {
	assert.False(t, BypassesQuota(models.RoleDreamer))
	assert.False(t, BypassesQuota(models.RoleInterpreter))
	assert.True(t, BypassesQuota(models.RoleAdmin))
	assert.True(t, BypassesQuota(models.RoleSuperAdmin))
}
