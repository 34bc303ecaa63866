package dbmodels

import (
	"carelink-backend/models"

	"github.com/lib/pq"
)

// Application is the per-user intake record. Exactly one row per user,
// enforced by the unique index on UserID; repeat submissions update in place.
type Application struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);uniqueIndex"`
	User   *User  `gorm:"foreignKey:UserID"`

	Status          models.ApplicationStatus `gorm:"type:varchar(50);index"`
	ApplicationStep int

	YearsOfExperience     int
	PreferredWorkLocation string         `gorm:"type:varchar(255)"`
	AvailableWeekends     bool
	AvailableNights       bool
	Specialties           pq.StringArray `gorm:"type:text[]"`
	Certifications        pq.StringArray `gorm:"type:text[]"`
	CoverLetter           string

	// Storage locators only, never file bytes.
	CvFileID    string `gorm:"type:varchar(36)"`
	VideoFileID string `gorm:"type:varchar(36)"`

	Confirmed  bool
	AdminNotes string
}

type ApplicationExt struct {
	Application
	UserFirstName string
	UserLastName  string
	UserEmail     string
}

// ApplicationFilter narrows admin list queries.
type ApplicationFilter struct {
	Status      models.ApplicationStatus `json:"status"`
	StageStatus models.StageStatus       `json:"stage_status"`
	Search      string                   `json:"search"`
}
