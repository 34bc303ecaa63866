package dbmodels

// FileStorage maps a stored object to the application that owns it.
// ObjectKey is the locator inside the bucket; rows whose application no longer
// references them are swept by the cleanup worker.
type FileStorage struct {
	BaseModel
	Name          string
	ApplicationID string `gorm:"type:varchar(36);index"`
	Type          FileType
	ContentType   string
	ObjectKey     string `gorm:"type:varchar(255)"`
}

type FileType string

const (
	ApplicationCV            FileType = "application_cv"
	ApplicationCertification FileType = "application_certification"
	ApplicationVideo         FileType = "application_video_interview"
)

func (t FileType) IsValid() bool {
	return t == ApplicationCV || t == ApplicationCertification || t == ApplicationVideo
}

type UploadFileInfo struct {
	ApplicationID string
	FileName      string
	FileType      FileType
	ContentType   string
}
