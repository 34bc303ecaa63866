package applications

import (
	"strings"

	"carelink-backend/models"
	applicationapimodels "carelink-backend/models/api/application"
	dbmodels "carelink-backend/models/db"

	"github.com/lib/pq"
)

// TotalSteps is the length of the intake sequence:
// 1 location & availability, 2 specialties, 3 documents, 4 video & confirmation.
const TotalSteps = models.FinalApplicationStep

// AttachedFiles tells the validator which documents arrive with the current
// submission, so document steps accept either a fresh upload or one on record.
type AttachedFiles struct {
	CV    bool
	Video bool
}

// ValidateStep checks the payload of one step against that step's required
// fields and returns the normalized column map to persist. Only keys present
// in the payload appear in the result, so earlier steps' data is never erased.
func ValidateStep(step int, p applicationapimodels.StepPayload, attached AttachedFiles, rec dbmodels.Application) (map[string]interface{}, error) {
	if step < 1 || step > TotalSteps {
		return nil, newValidationError("step", "unknown step number")
	}
	updMap := map[string]interface{}{}

	if p.YearsOfExperience != nil {
		if *p.YearsOfExperience < 0 || *p.YearsOfExperience > 80 {
			return nil, newValidationError("years_of_experience", "must be between 0 and 80")
		}
		updMap["years_of_experience"] = *p.YearsOfExperience
	}
	if p.PreferredWorkLocation != nil {
		location := strings.TrimSpace(*p.PreferredWorkLocation)
		if location == "" {
			return nil, newValidationError("preferred_work_location", "must not be empty")
		}
		updMap["preferred_work_location"] = location
	}
	if p.AvailableWeekends != nil {
		updMap["available_weekends"] = *p.AvailableWeekends
	}
	if p.AvailableNights != nil {
		updMap["available_nights"] = *p.AvailableNights
	}
	if p.Specialties != nil {
		specialties := normalizeList(p.Specialties)
		if len(specialties) == 0 {
			return nil, newValidationError("specialties", "must contain at least one value")
		}
		updMap["specialties"] = pq.StringArray(specialties)
	}
	if p.Certifications != nil {
		updMap["certifications"] = pq.StringArray(normalizeList(p.Certifications))
	}
	if p.CoverLetter != nil {
		updMap["cover_letter"] = strings.TrimSpace(*p.CoverLetter)
	}
	if p.Confirm != nil {
		updMap["confirmed"] = *p.Confirm
	}

	if err := checkRequired(step, updMap, attached, rec); err != nil {
		return nil, err
	}
	return updMap, nil
}

// checkRequired enforces per-step required fields. A requirement is satisfied
// by the current payload or by a value already on the record, so resubmitting
// a completed step with a partial payload stays valid.
func checkRequired(step int, updMap map[string]interface{}, attached AttachedFiles, rec dbmodels.Application) error {
	switch step {
	case 1:
		if _, ok := updMap["preferred_work_location"]; !ok && rec.PreferredWorkLocation == "" {
			return newValidationError("preferred_work_location", "required")
		}
	case 2:
		if _, ok := updMap["specialties"]; !ok && len(rec.Specialties) == 0 {
			return newValidationError("specialties", "required")
		}
	case 3:
		if !attached.CV && rec.CvFileID == "" {
			return newValidationError("cv_file", "CV document is required")
		}
	case 4:
		if !attached.Video && rec.VideoFileID == "" {
			return newValidationError("video_file", "video interview is required")
		}
		confirmed := rec.Confirmed
		if v, ok := updMap["confirmed"]; ok {
			confirmed = v.(bool)
		}
		if !confirmed {
			return newValidationError("confirm", "final confirmation is required")
		}
	}
	return nil
}

// checkSequence allows resubmission of any completed step and advancement to
// the immediate next step only.
func checkSequence(step int, currentStep int) error {
	if step > currentStep+1 {
		return &OutOfSequenceError{Current: currentStep, Requested: step}
	}
	return nil
}

// advanceColumns extends updMap with the step/status columns of a successful
// submission: the step never decreases, and completing the final step moves a
// pending application into review.
func advanceColumns(updMap map[string]interface{}, step int, rec dbmodels.Application) {
	if step > rec.ApplicationStep {
		updMap["application_step"] = step
	}
	if step == TotalSteps && rec.Status == models.ApplicationStatusPending {
		updMap["status"] = models.ApplicationStatusUnderReview
	}
}

func normalizeList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
