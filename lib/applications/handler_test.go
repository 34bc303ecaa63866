package applications

import (
	"context"
	"fmt"
	"testing"

	"carelink-backend/models"
	applicationapimodels "carelink-backend/models/api/application"
	dbmodels "carelink-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeApplicationStore struct {
	rec     *dbmodels.Application
	creates int
	updates []map[string]interface{}
}

func (s *fakeApplicationStore) Create(rec dbmodels.Application) (string, error) {
	s.creates++
	rec.ID = fmt.Sprintf("app-%d", s.creates)
	s.rec = &rec
	return rec.ID, nil
}

func (s *fakeApplicationStore) Update(id string, updMap map[string]interface{}) error {
	if s.rec == nil || s.rec.ID != id {
		return errors.New("application not found")
	}
	s.updates = append(s.updates, updMap)
	for column, value := range updMap {
		switch column {
		case "application_step":
			s.rec.ApplicationStep = value.(int)
		case "status":
			s.rec.Status = value.(models.ApplicationStatus)
		case "cv_file_id":
			s.rec.CvFileID = value.(string)
		case "video_file_id":
			s.rec.VideoFileID = value.(string)
		case "years_of_experience":
			s.rec.YearsOfExperience = value.(int)
		case "preferred_work_location":
			s.rec.PreferredWorkLocation = value.(string)
		case "available_weekends":
			s.rec.AvailableWeekends = value.(bool)
		case "available_nights":
			s.rec.AvailableNights = value.(bool)
		case "specialties":
			s.rec.Specialties = value.(pq.StringArray)
		case "certifications":
			s.rec.Certifications = value.(pq.StringArray)
		case "cover_letter":
			s.rec.CoverLetter = value.(string)
		case "confirmed":
			s.rec.Confirmed = value.(bool)
		case "admin_notes":
			s.rec.AdminNotes = value.(string)
		}
	}
	return nil
}

func (s *fakeApplicationStore) GetByID(id string) (*dbmodels.ApplicationExt, error) {
	if s.rec == nil || s.rec.ID != id {
		return nil, nil
	}
	return &dbmodels.ApplicationExt{Application: *s.rec}, nil
}

func (s *fakeApplicationStore) GetByUserID(userID string) (*dbmodels.Application, error) {
	if s.rec == nil || s.rec.UserID != userID {
		return nil, nil
	}
	rec := *s.rec
	return &rec, nil
}

func (s *fakeApplicationStore) List(filter dbmodels.ApplicationFilter, page, limit int) ([]dbmodels.ApplicationExt, int64, error) {
	if s.rec == nil {
		return []dbmodels.ApplicationExt{}, 0, nil
	}
	return []dbmodels.ApplicationExt{{Application: *s.rec}}, 1, nil
}

type fakeFileStorage struct {
	uploads []dbmodels.UploadFileInfo
}

func (f *fakeFileStorage) Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (string, error) {
	f.uploads = append(f.uploads, info)
	return fmt.Sprintf("file-%d", len(f.uploads)), nil
}

func (f *fakeFileStorage) GetFile(ctx context.Context, fileID string) (dbmodels.FileStorage, []byte, error) {
	return dbmodels.FileStorage{}, nil, errors.New("not found")
}

func (f *fakeFileStorage) ListByApplication(applicationID string) ([]dbmodels.FileStorage, error) {
	return nil, nil
}

func (f *fakeFileStorage) DeleteFile(ctx context.Context, rec dbmodels.FileStorage) error {
	return nil
}

func (f *fakeFileStorage) ListOrphans(graceHours int) ([]dbmodels.FileStorage, error) {
	return nil, nil
}

func (f *fakeFileStorage) EnsureBucket(ctx context.Context) error {
	return nil
}

func newTestHandler(hooks ...PostCreateHook) (*impl, *fakeApplicationStore, *fakeFileStorage) {
	store := &fakeApplicationStore{}
	files := &fakeFileStorage{}
	return &impl{store: store, files: files, hooks: hooks}, store, files
}

func stepOneRequest() applicationapimodels.SubmitRequest {
	return applicationapimodels.SubmitRequest{
		Step: 1,
		Payload: applicationapimodels.StepPayload{
			YearsOfExperience:     intPtr(5),
			PreferredWorkLocation: strPtr("Toronto"),
			AvailableWeekends:     boolPtr(true),
		},
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	t.Run("first submission creates the record and fires hooks once", func(t *testing.T) {
		hookCalls := 0
		handler, store, _ := newTestHandler(func(rec dbmodels.Application) {
			hookCalls++
		})
		view, err := handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		require.Equal(t, 1, store.creates)
		require.Equal(t, 1, hookCalls)
		require.Equal(t, models.ApplicationStatusPending, view.Status)
		require.Equal(t, models.StageStatusDraft, view.StageStatus)
		require.Equal(t, 1, view.ApplicationStep)
		require.Equal(t, "Toronto", view.PreferredWorkLocation)

		_, err = handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		require.Equal(t, 1, store.creates)
		require.Equal(t, 1, hookCalls)
	})
	t.Run("hook panic does not fail the submission", func(t *testing.T) {
		handler, _, _ := newTestHandler(func(rec dbmodels.Application) {
			panic("mail provider exploded")
		})
		_, err := handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
	})
	t.Run("skipping ahead leaves the record unchanged", func(t *testing.T) {
		handler, store, files := newTestHandler()
		_, err := handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		before := *store.rec

		_, err = handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step: 3,
		}, []FileAttachment{{Type: dbmodels.ApplicationCV, Name: "cv.pdf", Body: []byte("pdf")}})
		var seqErr *OutOfSequenceError
		require.ErrorAs(t, err, &seqErr)
		require.Equal(t, before, *store.rec)
		require.Empty(t, files.uploads)
	})
	t.Run("validation failure leaves the record unchanged", func(t *testing.T) {
		handler, store, _ := newTestHandler()
		_, err := handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		before := *store.rec

		_, err = handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step: 2,
		}, nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, before, *store.rec)
	})
	t.Run("document upload stores the locator", func(t *testing.T) {
		handler, store, files := newTestHandler()
		_, err := handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		_, err = handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step: 2,
			Payload: applicationapimodels.StepPayload{
				Specialties: []string{"dementia care"},
			},
		}, nil)
		require.NoError(t, err)

		view, err := handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step: 3,
		}, []FileAttachment{{Type: dbmodels.ApplicationCV, Name: "cv.pdf", ContentType: "application/pdf", Body: []byte("pdf")}})
		require.NoError(t, err)
		require.Len(t, files.uploads, 1)
		require.Equal(t, store.rec.ID, files.uploads[0].ApplicationID)
		require.Equal(t, dbmodels.ApplicationCV, files.uploads[0].FileType)
		require.Equal(t, "file-1", view.CvFileID)
		require.Equal(t, 3, view.ApplicationStep)
	})
	t.Run("completing the final step moves the application into review", func(t *testing.T) {
		handler, _, _ := newTestHandler()
		_, err := handler.Submit(ctx, "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		_, err = handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step:    2,
			Payload: applicationapimodels.StepPayload{Specialties: []string{"dementia care"}},
		}, nil)
		require.NoError(t, err)
		_, err = handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step: 3,
		}, []FileAttachment{{Type: dbmodels.ApplicationCV, Name: "cv.pdf", Body: []byte("pdf")}})
		require.NoError(t, err)

		view, err := handler.Submit(ctx, "user-1", applicationapimodels.SubmitRequest{
			Step:    4,
			Payload: applicationapimodels.StepPayload{Confirm: boolPtr(true)},
		}, []FileAttachment{{Type: dbmodels.ApplicationVideo, Name: "intro.mp4", Body: []byte("mp4")}})
		require.NoError(t, err)
		require.Equal(t, models.ApplicationStatusUnderReview, view.Status)
		require.Equal(t, models.StageStatusPendingReview, view.StageStatus)
		require.Equal(t, 4, view.ApplicationStep)
		require.NotEmpty(t, view.VideoFileID)
	})
}

func TestFetchMine(t *testing.T) {
	handler, _, _ := newTestHandler()
	t.Run("nil when no application was started", func(t *testing.T) {
		view, err := handler.FetchMine("user-1")
		require.NoError(t, err)
		require.Nil(t, view)
	})
	t.Run("returns the record once created", func(t *testing.T) {
		_, err := handler.Submit(context.Background(), "user-1", stepOneRequest(), nil)
		require.NoError(t, err)
		view, err := handler.FetchMine("user-1")
		require.NoError(t, err)
		require.NotNil(t, view)
		require.Equal(t, "user-1", view.UserID)
	})
}

func TestChangeStatus(t *testing.T) {
	newHandlerWithStatus := func(status models.ApplicationStatus) (*impl, *fakeApplicationStore) {
		handler, store, _ := newTestHandler()
		store.rec = &dbmodels.Application{
			BaseModel: dbmodels.BaseModel{ID: "app-1"},
			UserID:    "user-1",
			Status:    status,
		}
		return handler, store
	}
	t.Run("one step forward is allowed", func(t *testing.T) {
		handler, store := newHandlerWithStatus(models.ApplicationStatusUnderReview)
		require.NoError(t, handler.ChangeStatus("app-1", models.ApplicationStatusInterview))
		require.Equal(t, models.ApplicationStatusInterview, store.rec.Status)
	})
	t.Run("skipping pipeline stages is not", func(t *testing.T) {
		handler, _ := newHandlerWithStatus(models.ApplicationStatusPending)
		require.Error(t, handler.ChangeStatus("app-1", models.ApplicationStatusInterview))
	})
	t.Run("rejection is allowed from any non-terminal state", func(t *testing.T) {
		handler, store := newHandlerWithStatus(models.ApplicationStatusTraining)
		require.NoError(t, handler.ChangeStatus("app-1", models.ApplicationStatusRejected))
		require.Equal(t, models.ApplicationStatusRejected, store.rec.Status)
	})
	t.Run("terminal states stay put", func(t *testing.T) {
		handler, _ := newHandlerWithStatus(models.ApplicationStatusRejected)
		require.Error(t, handler.ChangeStatus("app-1", models.ApplicationStatusPending))
	})
	t.Run("unknown status and unknown application fail", func(t *testing.T) {
		handler, _ := newHandlerWithStatus(models.ApplicationStatusPending)
		require.Error(t, handler.ChangeStatus("app-1", models.ApplicationStatus("archived")))
		require.Error(t, handler.ChangeStatus("missing", models.ApplicationStatusUnderReview))
	})
}

func TestOverride(t *testing.T) {
	handler, store, _ := newTestHandler()
	store.rec = &dbmodels.Application{
		BaseModel:       dbmodels.BaseModel{ID: "app-1"},
		UserID:          "user-1",
		Status:          models.ApplicationStatusInterview,
		ApplicationStep: 4,
	}
	t.Run("resets status and step together", func(t *testing.T) {
		err := handler.Override("app-1", applicationapimodels.OverrideRequest{
			Status:          models.ApplicationStatusPending,
			ApplicationStep: 2,
		})
		require.NoError(t, err)
		require.Equal(t, models.ApplicationStatusPending, store.rec.Status)
		require.Equal(t, 2, store.rec.ApplicationStep)
	})
	t.Run("rejects bad input", func(t *testing.T) {
		require.Error(t, handler.Override("app-1", applicationapimodels.OverrideRequest{
			Status:          models.ApplicationStatus("archived"),
			ApplicationStep: 1,
		}))
		require.Error(t, handler.Override("app-1", applicationapimodels.OverrideRequest{
			Status:          models.ApplicationStatusPending,
			ApplicationStep: TotalSteps + 1,
		}))
	})
}
