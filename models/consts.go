package models

// ApplicationStatus is the hiring-pipeline status of a caregiver application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusTraining    ApplicationStatus = "training"
	ApplicationStatusInternship  ApplicationStatus = "internship"
	ApplicationStatusHired       ApplicationStatus = "hired"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// statusOrder is the normal pipeline sequence, rejected excluded.
var statusOrder = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusUnderReview,
	ApplicationStatusInterview,
	ApplicationStatusTraining,
	ApplicationStatusInternship,
	ApplicationStatusHired,
}

func (s ApplicationStatus) IsValid() bool {
	if s == ApplicationStatusRejected {
		return true
	}
	for _, known := range statusOrder {
		if s == known {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusHired || s == ApplicationStatusRejected
}

// Next returns the following pipeline status, or empty for terminal/unknown values.
func (s ApplicationStatus) Next() ApplicationStatus {
	for idx, known := range statusOrder {
		if s == known && idx+1 < len(statusOrder) {
			return statusOrder[idx+1]
		}
	}
	return ""
}

// CanTransitionTo reports whether a review action may move the status to newStatus:
// one step forward along the pipeline, or rejected from any non-terminal state.
func (s ApplicationStatus) CanTransitionTo(newStatus ApplicationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if newStatus == ApplicationStatusRejected {
		return true
	}
	return s.Next() == newStatus
}

type UserRole string

const (
	CaregiverRole UserRole = "caregiver"
	ClientRole    UserRole = "client"
	AdminRole     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	return r == CaregiverRole || r == ClientRole || r == AdminRole
}
