package models

// StageStatus is the coarse, UI-facing bucket derived from the raw pipeline
// status and step index. Dashboards consume it read-only.
type StageStatus string

const (
	StageStatusDraft         StageStatus = "draft"
	StageStatusPendingReview StageStatus = "pending_review"
	StageStatusInAssessment  StageStatus = "in_assessment"
	StageStatusApproved      StageStatus = "approved"
	StageStatusRejected      StageStatus = "rejected"
)

// FinalApplicationStep is the last step of the intake sequence.
const FinalApplicationStep = 4

// StageStatusFor projects {status, step} onto a stage bucket. Pure and total:
// unknown statuses fall back to draft so list views never render an empty cell.
func StageStatusFor(status ApplicationStatus, applicationStep int) StageStatus {
	switch status {
	case ApplicationStatusPending:
		if applicationStep < FinalApplicationStep {
			return StageStatusDraft
		}
		return StageStatusPendingReview
	case ApplicationStatusUnderReview:
		return StageStatusPendingReview
	case ApplicationStatusInterview, ApplicationStatusTraining, ApplicationStatusInternship:
		return StageStatusInAssessment
	case ApplicationStatusHired:
		return StageStatusApproved
	case ApplicationStatusRejected:
		return StageStatusRejected
	}
	return StageStatusDraft
}
