package applications

import (
	"context"

	"carelink-backend/db"
	applicationstore "carelink-backend/lib/applications/store"
	userstore "carelink-backend/lib/auth/store"
	filestorage "carelink-backend/lib/file-storage"
	"carelink-backend/lib/notification"
	"carelink-backend/models"
	applicationapimodels "carelink-backend/models/api/application"
	dbmodels "carelink-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Submit(ctx context.Context, userID string, request applicationapimodels.SubmitRequest, files []FileAttachment) (applicationapimodels.ApplicationView, error)
	FetchMine(userID string) (view *applicationapimodels.ApplicationView, err error)
	GetForReview(id string) (applicationapimodels.ReviewView, error)
	List(filter dbmodels.ApplicationFilter, page, limit int) (list []applicationapimodels.ReviewView, rowCount int64, err error)
	ListRecords(filter dbmodels.ApplicationFilter) (list []dbmodels.ApplicationExt, err error)
	GetRecord(id string) (rec dbmodels.ApplicationExt, err error)
	ChangeStatus(id string, status models.ApplicationStatus) error
	SetNote(id string, note string) error
	Override(id string, request applicationapimodels.OverrideRequest) error
}

// FileAttachment is one multipart file of a submission; bytes stop here and
// only locators reach the application record.
type FileAttachment struct {
	Type        dbmodels.FileType
	Name        string
	ContentType string
	Body        []byte
}

// PostCreateHook runs after the authoritative write of a brand-new record.
// Each hook is independently fallible; failures are logged, never propagated.
type PostCreateHook func(rec dbmodels.Application)

// exportRowLimit caps unpaged export queries.
const exportRowLimit = 10000

var Instance Provider

func NewHandler() {
	users := userstore.NewInstance(db.DB)
	Instance = &impl{
		store: applicationstore.NewInstance(db.DB),
		files: filestorage.Instance,
		hooks: []PostCreateHook{newWelcomeHook(users)},
	}
}

type impl struct {
	store applicationstore.Provider
	files filestorage.Provider
	hooks []PostCreateHook
}

func (i impl) Submit(ctx context.Context, userID string, request applicationapimodels.SubmitRequest, files []FileAttachment) (applicationapimodels.ApplicationView, error) {
	logger := log.
		WithField("user_id", userID).
		WithField("step", request.Step)
	rec, err := i.store.GetByUserID(userID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "application read failed")
	}
	isNew := rec == nil
	if isNew {
		rec = &dbmodels.Application{
			UserID: userID,
			Status: models.ApplicationStatusPending,
		}
	}
	if err = checkSequence(request.Step, rec.ApplicationStep); err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	updMap, err := ValidateStep(request.Step, request.Payload, attachmentsOf(files), *rec)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	advanceColumns(updMap, request.Step, *rec)

	if isNew {
		applyColumns(rec, updMap)
		rec.ID, err = i.store.Create(*rec)
		if err != nil {
			return applicationapimodels.ApplicationView{}, errors.Wrap(err, "application create failed")
		}
		logger = logger.WithField("application_id", rec.ID)
		logger.Info("application record created")
		updMap = map[string]interface{}{}
	}

	// Uploads complete before the write that references their locators. A
	// failure here can strand an object; the cleanup worker sweeps those.
	for _, file := range files {
		fileID, uploadErr := i.files.Upload(ctx, dbmodels.UploadFileInfo{
			ApplicationID: rec.ID,
			FileName:      file.Name,
			FileType:      file.Type,
			ContentType:   file.ContentType,
		}, file.Body)
		if uploadErr != nil {
			return applicationapimodels.ApplicationView{}, errors.Wrap(uploadErr, "file upload failed")
		}
		switch file.Type {
		case dbmodels.ApplicationCV:
			updMap["cv_file_id"] = fileID
		case dbmodels.ApplicationVideo:
			updMap["video_file_id"] = fileID
		}
	}

	if len(updMap) > 0 {
		if err = i.store.Update(rec.ID, updMap); err != nil {
			return applicationapimodels.ApplicationView{}, errors.Wrap(err, "application update failed")
		}
	}

	if isNew {
		i.runPostCreateHooks(*rec)
	}

	canonical, err := i.store.GetByUserID(userID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, errors.Wrap(err, "application read failed")
	}
	if canonical == nil {
		return applicationapimodels.ApplicationView{}, errors.New("application vanished after write")
	}
	logger.Info("step submission persisted")
	return applicationapimodels.Convert(*canonical), nil
}

// FetchMine returns nil for users who have not started an application.
// Not-found is a defined result here, not an error.
func (i impl) FetchMine(userID string) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByUserID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "application read failed")
	}
	if rec == nil {
		return nil, nil
	}
	view := applicationapimodels.Convert(*rec)
	return &view, nil
}

func (i impl) GetForReview(id string) (applicationapimodels.ReviewView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ReviewView{}, err
	}
	if rec == nil {
		return applicationapimodels.ReviewView{}, errors.New("application not found")
	}
	return applicationapimodels.ConvertExt(*rec), nil
}

func (i impl) List(filter dbmodels.ApplicationFilter, page, limit int) ([]applicationapimodels.ReviewView, int64, error) {
	list, rowCount, err := i.store.List(filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]applicationapimodels.ReviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ConvertExt(rec))
	}
	return result, rowCount, nil
}

// ListRecords backs exports: the raw filtered rows without paging.
func (i impl) ListRecords(filter dbmodels.ApplicationFilter) ([]dbmodels.ApplicationExt, error) {
	list, _, err := i.store.List(filter, 1, exportRowLimit)
	return list, err
}

func (i impl) GetRecord(id string) (dbmodels.ApplicationExt, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dbmodels.ApplicationExt{}, err
	}
	if rec == nil {
		return dbmodels.ApplicationExt{}, errors.New("application not found")
	}
	return *rec, nil
}

func (i impl) ChangeStatus(id string, status models.ApplicationStatus) error {
	if !status.IsValid() {
		return errors.New("unknown status")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("application not found")
	}
	if !rec.Status.CanTransitionTo(status) {
		return errors.Errorf("status change from %s to %s is not allowed", rec.Status, status)
	}
	return i.store.Update(id, map[string]interface{}{
		"status": status,
	})
}

func (i impl) SetNote(id string, note string) error {
	return i.store.Update(id, map[string]interface{}{
		"admin_notes": note,
	})
}

// Override is the administrative reset path: the only mutation allowed to
// decrease the step or set the status out of order.
func (i impl) Override(id string, request applicationapimodels.OverrideRequest) error {
	if !request.Status.IsValid() {
		return errors.New("unknown status")
	}
	if request.ApplicationStep < 1 || request.ApplicationStep > TotalSteps {
		return errors.New("step out of range")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("application not found")
	}
	log.
		WithField("application_id", id).
		WithField("status", request.Status).
		WithField("step", request.ApplicationStep).
		Info("admin override applied")
	return i.store.Update(id, map[string]interface{}{
		"status":           request.Status,
		"application_step": request.ApplicationStep,
	})
}

func (i impl) runPostCreateHooks(rec dbmodels.Application) {
	for _, hook := range i.hooks {
		runHook(hook, rec)
	}
}

func runHook(hook PostCreateHook, rec dbmodels.Application) {
	defer func() {
		if r := recover(); r != nil {
			log.
				WithField("application_id", rec.ID).
				Errorf("panic in post-create hook: (%v)", r)
		}
	}()
	hook(rec)
}

// newWelcomeHook sends the best-effort welcome message on first submission.
func newWelcomeHook(users userstore.Provider) PostCreateHook {
	return func(rec dbmodels.Application) {
		logger := log.WithField("user_id", rec.UserID)
		user, err := users.GetByID(rec.UserID)
		if err != nil || user == nil {
			logger.WithError(err).Error("welcome mail skipped, user lookup failed")
			return
		}
		if !notification.Instance.Send(user.Email, user.DisplayName()) {
			logger.Warn("welcome mail was not delivered")
		}
	}
}

func attachmentsOf(files []FileAttachment) AttachedFiles {
	attached := AttachedFiles{}
	for _, file := range files {
		switch file.Type {
		case dbmodels.ApplicationCV:
			attached.CV = true
		case dbmodels.ApplicationVideo:
			attached.Video = true
		}
	}
	return attached
}

// applyColumns maps validated columns onto a fresh record before the first
// insert. Update paths use the column map directly.
func applyColumns(rec *dbmodels.Application, updMap map[string]interface{}) {
	for column, value := range updMap {
		switch column {
		case "years_of_experience":
			rec.YearsOfExperience = value.(int)
		case "preferred_work_location":
			rec.PreferredWorkLocation = value.(string)
		case "available_weekends":
			rec.AvailableWeekends = value.(bool)
		case "available_nights":
			rec.AvailableNights = value.(bool)
		case "specialties":
			rec.Specialties = value.(pq.StringArray)
		case "certifications":
			rec.Certifications = value.(pq.StringArray)
		case "cover_letter":
			rec.CoverLetter = value.(string)
		case "confirmed":
			rec.Confirmed = value.(bool)
		case "application_step":
			rec.ApplicationStep = value.(int)
		case "status":
			rec.Status = value.(models.ApplicationStatus)
		}
	}
}
