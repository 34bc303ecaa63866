package applications

import (
	"testing"

	"carelink-backend/models"
	applicationapimodels "carelink-backend/models/api/application"
	dbmodels "carelink-backend/models/db"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestValidateStep(t *testing.T) {
	t.Run("step one requires a work location", func(t *testing.T) {
		_, err := ValidateStep(1, applicationapimodels.StepPayload{}, AttachedFiles{}, dbmodels.Application{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "preferred_work_location", vErr.Field)
	})
	t.Run("step one accepts location and availability", func(t *testing.T) {
		updMap, err := ValidateStep(1, applicationapimodels.StepPayload{
			YearsOfExperience:     intPtr(5),
			PreferredWorkLocation: strPtr("  Toronto  "),
			AvailableWeekends:     boolPtr(true),
		}, AttachedFiles{}, dbmodels.Application{})
		require.NoError(t, err)
		require.Equal(t, "Toronto", updMap["preferred_work_location"])
		require.Equal(t, 5, updMap["years_of_experience"])
		require.Equal(t, true, updMap["available_weekends"])
		_, hasNights := updMap["available_nights"]
		require.False(t, hasNights)
	})
	t.Run("step one resubmission keeps location on record", func(t *testing.T) {
		rec := dbmodels.Application{PreferredWorkLocation: "Toronto"}
		updMap, err := ValidateStep(1, applicationapimodels.StepPayload{
			AvailableNights: boolPtr(true),
		}, AttachedFiles{}, rec)
		require.NoError(t, err)
		require.Equal(t, map[string]interface{}{"available_nights": true}, updMap)
	})
	t.Run("negative experience is rejected", func(t *testing.T) {
		_, err := ValidateStep(1, applicationapimodels.StepPayload{
			YearsOfExperience:     intPtr(-1),
			PreferredWorkLocation: strPtr("Toronto"),
		}, AttachedFiles{}, dbmodels.Application{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "years_of_experience", vErr.Field)
	})
	t.Run("step two requires at least one specialty", func(t *testing.T) {
		_, err := ValidateStep(2, applicationapimodels.StepPayload{
			Specialties: []string{"  ", ""},
		}, AttachedFiles{}, dbmodels.Application{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "specialties", vErr.Field)
	})
	t.Run("step two normalizes specialties", func(t *testing.T) {
		updMap, err := ValidateStep(2, applicationapimodels.StepPayload{
			Specialties: []string{" dementia care ", "dementia care", "palliative care"},
		}, AttachedFiles{}, dbmodels.Application{})
		require.NoError(t, err)
		require.Equal(t, pq.StringArray{"dementia care", "palliative care"}, updMap["specialties"])
	})
	t.Run("step three requires a CV upload or one on record", func(t *testing.T) {
		_, err := ValidateStep(3, applicationapimodels.StepPayload{}, AttachedFiles{}, dbmodels.Application{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "cv_file", vErr.Field)

		_, err = ValidateStep(3, applicationapimodels.StepPayload{}, AttachedFiles{CV: true}, dbmodels.Application{})
		require.NoError(t, err)

		_, err = ValidateStep(3, applicationapimodels.StepPayload{}, AttachedFiles{}, dbmodels.Application{CvFileID: "file-1"})
		require.NoError(t, err)
	})
	t.Run("final step requires video and confirmation", func(t *testing.T) {
		_, err := ValidateStep(4, applicationapimodels.StepPayload{
			Confirm: boolPtr(true),
		}, AttachedFiles{}, dbmodels.Application{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "video_file", vErr.Field)

		_, err = ValidateStep(4, applicationapimodels.StepPayload{}, AttachedFiles{Video: true}, dbmodels.Application{})
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "confirm", vErr.Field)

		updMap, err := ValidateStep(4, applicationapimodels.StepPayload{
			Confirm: boolPtr(true),
		}, AttachedFiles{Video: true}, dbmodels.Application{})
		require.NoError(t, err)
		require.Equal(t, true, updMap["confirmed"])
	})
	t.Run("unknown step number", func(t *testing.T) {
		_, err := ValidateStep(0, applicationapimodels.StepPayload{}, AttachedFiles{}, dbmodels.Application{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)

		_, err = ValidateStep(TotalSteps+1, applicationapimodels.StepPayload{}, AttachedFiles{}, dbmodels.Application{})
		require.ErrorAs(t, err, &vErr)
	})
}

func TestCheckSequence(t *testing.T) {
	t.Run("next step is allowed", func(t *testing.T) {
		require.NoError(t, checkSequence(1, 0))
		require.NoError(t, checkSequence(3, 2))
	})
	t.Run("completed steps can be resubmitted", func(t *testing.T) {
		require.NoError(t, checkSequence(1, 3))
		require.NoError(t, checkSequence(3, 3))
	})
	t.Run("skipping ahead fails", func(t *testing.T) {
		err := checkSequence(3, 1)
		var seqErr *OutOfSequenceError
		require.ErrorAs(t, err, &seqErr)
		require.Equal(t, 1, seqErr.Current)
		require.Equal(t, 3, seqErr.Requested)
	})
}

func TestAdvanceColumns(t *testing.T) {
	t.Run("step only moves forward", func(t *testing.T) {
		updMap := map[string]interface{}{}
		advanceColumns(updMap, 2, dbmodels.Application{ApplicationStep: 1})
		require.Equal(t, 2, updMap["application_step"])

		updMap = map[string]interface{}{}
		advanceColumns(updMap, 1, dbmodels.Application{ApplicationStep: 3})
		_, ok := updMap["application_step"]
		require.False(t, ok)
	})
	t.Run("final step moves pending into review", func(t *testing.T) {
		updMap := map[string]interface{}{}
		advanceColumns(updMap, TotalSteps, dbmodels.Application{
			ApplicationStep: TotalSteps - 1,
			Status:          models.ApplicationStatusPending,
		})
		require.Equal(t, models.ApplicationStatusUnderReview, updMap["status"])
	})
	t.Run("final step resubmission does not reset a later status", func(t *testing.T) {
		updMap := map[string]interface{}{}
		advanceColumns(updMap, TotalSteps, dbmodels.Application{
			ApplicationStep: TotalSteps,
			Status:          models.ApplicationStatusInterview,
		})
		_, ok := updMap["status"]
		require.False(t, ok)
	})
}
