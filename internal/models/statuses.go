package models

type ProfileRole string
type DreamStatus string
type RequestStatus string
type PaymentStatus string

const (
	RoleDreamer     ProfileRole = "dreamer"
	RoleInterpreter ProfileRole = "interpreter"
	RoleAdmin       ProfileRole = "admin"
	RoleSuperAdmin  ProfileRole = "super_admin"

	DreamStatusNew                   DreamStatus = "new"
	DreamStatusPendingInquiry        DreamStatus = "pending_inquiry"
	DreamStatusPendingInterpretation DreamStatus = "pending_interpretation"
	DreamStatusInterpreted           DreamStatus = "interpreted"
	DreamStatusReturned              DreamStatus = "returned"

	RequestStatusOpen       RequestStatus = "open"
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusAccepted   RequestStatus = "accepted"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusAssigned   RequestStatus = "assigned"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsElevated reports whether the role carries platform-level privileges.
func (r ProfileRole) IsElevated() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// SelfServiceRole reports whether the role may be chosen at registration.
func SelfServiceRole(r ProfileRole) bool {
	return r == RoleDreamer || r == RoleInterpreter
}

var dreamTransitions = map[DreamStatus][]DreamStatus{
	DreamStatusNew:                   {DreamStatusPendingInquiry, DreamStatusPendingInterpretation},
	DreamStatusPendingInquiry:        {DreamStatusPendingInterpretation, DreamStatusReturned},
	DreamStatusPendingInterpretation: {DreamStatusInterpreted, DreamStatusReturned},
}

// CanTransitionTo reports whether the dream lifecycle allows from -> to.
func (s DreamStatus) CanTransitionTo(to DreamStatus) bool {
	for _, next := range dreamTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusOpen:       {RequestStatusPending, RequestStatusAssigned, RequestStatusCancelled},
	RequestStatusPending:    {RequestStatusAccepted, RequestStatusRejected, RequestStatusCancelled},
	RequestStatusAccepted:   {RequestStatusAssigned, RequestStatusCancelled},
	RequestStatusAssigned:   {RequestStatusInProgress, RequestStatusCancelled},
	RequestStatusInProgress: {RequestStatusCompleted, RequestStatusCancelled},
}

// CanTransitionTo reports whether the request lifecycle allows from -> to.
func (s RequestStatus) CanTransitionTo(to RequestStatus) bool {
	for _, next := range requestTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
