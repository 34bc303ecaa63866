package applicationapimodels

import (
	"time"

	"carelink-backend/models"
	apimodels "carelink-backend/models/api"
	dbmodels "carelink-backend/models/db"
)

// StepPayload carries one step's fields. Pointer fields distinguish
// "absent" from zero values so a resubmission only overwrites what it sends.
type StepPayload struct {
	YearsOfExperience     *int     `json:"years_of_experience,omitempty" form:"years_of_experience"`
	PreferredWorkLocation *string  `json:"preferred_work_location,omitempty" form:"preferred_work_location"`
	AvailableWeekends     *bool    `json:"available_weekends,omitempty" form:"available_weekends"`
	AvailableNights       *bool    `json:"available_nights,omitempty" form:"available_nights"`
	Specialties           []string `json:"specialties,omitempty" form:"specialties"`
	Certifications        []string `json:"certifications,omitempty" form:"certifications"`
	CoverLetter           *string  `json:"cover_letter,omitempty" form:"cover_letter"`
	Confirm               *bool    `json:"confirm,omitempty" form:"confirm"`
}

type SubmitRequest struct {
	Step    int         `json:"step" form:"step"`
	Payload StepPayload `json:"payload"`
}

type ApplicationView struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	Status          models.ApplicationStatus `json:"status"`
	StageStatus     models.StageStatus       `json:"stage_status"`
	ApplicationStep int                      `json:"application_step"`

	YearsOfExperience     int      `json:"years_of_experience,omitempty"`
	PreferredWorkLocation string   `json:"preferred_work_location,omitempty"`
	AvailableWeekends     bool     `json:"available_weekends"`
	AvailableNights       bool     `json:"available_nights"`
	Specialties           []string `json:"specialties,omitempty"`
	Certifications        []string `json:"certifications,omitempty"`
	CoverLetter           string   `json:"cover_letter,omitempty"`

	CvFileID    string `json:"cv_file_id,omitempty"`
	VideoFileID string `json:"video_file_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewView extends the candidate view with admin-only data.
type ReviewView struct {
	ApplicationView
	AdminNotes string `json:"admin_notes,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

func Convert(rec dbmodels.Application) ApplicationView {
	return ApplicationView{
		ID:                    rec.ID,
		UserID:                rec.UserID,
		Status:                rec.Status,
		StageStatus:           models.StageStatusFor(rec.Status, rec.ApplicationStep),
		ApplicationStep:       rec.ApplicationStep,
		YearsOfExperience:     rec.YearsOfExperience,
		PreferredWorkLocation: rec.PreferredWorkLocation,
		AvailableWeekends:     rec.AvailableWeekends,
		AvailableNights:       rec.AvailableNights,
		Specialties:           rec.Specialties,
		Certifications:        rec.Certifications,
		CoverLetter:           rec.CoverLetter,
		CvFileID:              rec.CvFileID,
		VideoFileID:           rec.VideoFileID,
		CreatedAt:             rec.CreatedAt,
		UpdatedAt:             rec.UpdatedAt,
	}
}

func ConvertExt(rec dbmodels.ApplicationExt) ReviewView {
	return ReviewView{
		ApplicationView: Convert(rec.Application),
		AdminNotes:      rec.AdminNotes,
		FirstName:       rec.UserFirstName,
		LastName:        rec.UserLastName,
		Email:           rec.UserEmail,
	}
}

type StatusChangeRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

// OverrideRequest is the admin-only reset path: the one mutation allowed to
// decrease the step or set status out of order.
type OverrideRequest struct {
	Status          models.ApplicationStatus `json:"status"`
	ApplicationStep int                      `json:"application_step"`
}

type ListRequest struct {
	apimodels.Pagination
	Filter dbmodels.ApplicationFilter `json:"filter"`
}
