package auth

import (
	"rooya_backend/internal/models"
)

// Authorization decisions over roles and resource participation. Every
// helper answers for one action; super_admin passes all of them. Callers
// translate a false into the uniform forbidden error.

// CanAssignInterpreter: only elevated roles may set the interpreter on a
// dream or request.
func CanAssignInterpreter(role models.ProfileRole) bool {
	return role.IsElevated()
}

// CanViewDream: participants see their own dreams, elevated roles see all.
func CanViewDream(role models.ProfileRole, actorID string, dream *models.Dream) bool {
	if role.IsElevated() {
		return true
	}
	if dream.DreamerID == actorID {
		return true
	}
	return dream.InterpreterID != nil && *dream.InterpreterID == actorID
}

// CanEditInterpretation: the assigned interpreter only, or super_admin.
// Admins may view and assign but not write interpretation text.
func CanEditInterpretation(role models.ProfileRole, actorID string, dream *models.Dream) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	if role != models.RoleInterpreter {
		return false
	}
	return dream.InterpreterID != nil && *dream.InterpreterID == actorID
}

// CanTransitionDream: the owning dreamer and the assigned interpreter may
// move the dream through its lifecycle; super_admin is unrestricted.
func CanTransitionDream(role models.ProfileRole, actorID string, dream *models.Dream) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	if role == models.RoleDreamer {
		return dream.DreamerID == actorID
	}
	if role == models.RoleInterpreter {
		return dream.InterpreterID != nil && *dream.InterpreterID == actorID
	}
	return false
}

// CanEditNotes: the owning dreamer, or super_admin.
func CanEditNotes(role models.ProfileRole, actorID string, dream *models.Dream) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	return role == models.RoleDreamer && dream.DreamerID == actorID
}

// CanMessageOnDream guards both read and write paths of dream messaging.
// Messaging is closed for everyone but super_admin until an interpreter
// is assigned; after that, only participants may take part.
func CanMessageOnDream(role models.ProfileRole, actorID string, dream *models.Dream) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	if dream.InterpreterID == nil {
		return false
	}
	if dream.DreamerID == actorID || *dream.InterpreterID == actorID {
		return true
	}
	return role == models.RoleAdmin
}

// CanChatOnRequest is the request-scoped twin of CanMessageOnDream.
func CanChatOnRequest(role models.ProfileRole, actorID string, req *models.Request) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	if req.InterpreterID == nil {
		return false
	}
	if req.DreamerID == actorID || *req.InterpreterID == actorID {
		return true
	}
	return role == models.RoleAdmin
}

// CanDeleteMessage: the original sender, or super_admin.
func CanDeleteMessage(role models.ProfileRole, actorID string, msg *models.Message) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	return msg.SenderID == actorID
}

// CanDeleteDream: the owning dreamer or an elevated role.
func CanDeleteDream(role models.ProfileRole, actorID string, dream *models.Dream) bool {
	if role.IsElevated() {
		return true
	}
	return dream.DreamerID == actorID
}

// BypassesQuota: elevated roles are not subject to subscription quotas.
func BypassesQuota(role models.ProfileRole) bool {
	return role.IsElevated()
}
