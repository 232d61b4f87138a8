package validator

import (
	"log"

	"rooya_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain validation tags. A registration
// failure is a startup misconfiguration and aborts the process.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-profile-role", validateProfileRole)
	mustRegister("is-dream-status", validateDreamStatus)
	mustRegister("is-request-status", validateRequestStatus)
	mustRegister("is-payment-status", validatePaymentStatus)
}

func validateProfileRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	switch models.ProfileRole(value) {
	case models.RoleDreamer, models.RoleInterpreter, models.RoleAdmin, models.RoleSuperAdmin:
		return true
	default:
		return false
	}
}

func validateDreamStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.DreamStatus(value) {
	case models.DreamStatusNew, models.DreamStatusPendingInquiry, models.DreamStatusPendingInterpretation,
		models.DreamStatusInterpreted, models.DreamStatusReturned:
		return true
	default:
		return false
	}
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RequestStatus(value) {
	case models.RequestStatusOpen, models.RequestStatusPending, models.RequestStatusAccepted,
		models.RequestStatusRejected, models.RequestStatusAssigned, models.RequestStatusInProgress,
		models.RequestStatusCompleted, models.RequestStatusCancelled:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusPending, models.PaymentStatusSucceeded, models.PaymentStatusFailed,
		models.PaymentStatusRefunded, models.PaymentStatusCancelled:
		return true
	default:
		return false
	}
}
