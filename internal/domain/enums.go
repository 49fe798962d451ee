package domain

// Role represents the authorization level carried in a session token.
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleOfficer    Role = "officer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdministrative reports whether the role may exercise back-office
// capabilities (status updates, issuance, dashboards).
func (r Role) IsAdministrative() bool {
	switch r {
	case RoleOfficer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// RequestStatus represents the lifecycle state of a service request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusCompleted  RequestStatus = "completed"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusProcessing, RequestStatusApproved,
		RequestStatusRejected, RequestStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusCompleted
}

// CanTransitionTo reports whether the state machine allows moving from s
// to target. Completed is reachable only from approved; it is reserved
// for certificate issuance and rejected by direct status updates at the
// service layer.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return target == RequestStatusProcessing ||
			target == RequestStatusApproved ||
			target == RequestStatusRejected
	case RequestStatusProcessing:
		return target == RequestStatusApproved || target == RequestStatusRejected
	case RequestStatusApproved:
		return target == RequestStatusCompleted
	}
	return false
}

// Priority represents the handling priority of a request or grievance.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityHigh
}

// GrievanceStatus represents the lifecycle state of a grievance.
type GrievanceStatus string

const (
	GrievanceStatusOpen      GrievanceStatus = "open"
	GrievanceStatusEscalated GrievanceStatus = "escalated"
	GrievanceStatusResolved  GrievanceStatus = "resolved"
)

func (s GrievanceStatus) String() string { return string(s) }

func (s GrievanceStatus) IsValid() bool {
	switch s {
	case GrievanceStatusOpen, GrievanceStatusEscalated, GrievanceStatusResolved:
		return true
	}
	return false
}

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the payment can no longer change state.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// CodePurpose identifies what a one-time login code was issued for.
type CodePurpose string

const (
	CodePurposeLogin CodePurpose = "login"
)

func (p CodePurpose) String() string { return string(p) }

func (p CodePurpose) IsValid() bool {
	return p == CodePurposeLogin
}
