package xlsexport

import (
	"testing"
	"time"

	"carelink-backend/models"
	dbmodels "carelink-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportApplicationList(t *testing.T) {
	handler := impl{}
	t.Run("empty list produces a sheet with headers only", func(t *testing.T) {
		buf, err := handler.ExportApplicationList(nil)
		require.NoError(t, err)
		require.NotZero(t, buf.Len())

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Applications")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, applicationHeaders, rows[0])
	})
	t.Run("rows carry candidate data and derived stage", func(t *testing.T) {
		rec := dbmodels.ApplicationExt{
			Application: dbmodels.Application{
				BaseModel: dbmodels.BaseModel{
					ID:        "app-1",
					CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				},
				Status:                models.ApplicationStatusUnderReview,
				ApplicationStep:       4,
				YearsOfExperience:     5,
				PreferredWorkLocation: "Toronto",
				Specialties:           []string{"dementia care", "palliative care"},
			},
			UserFirstName: "Alex",
			UserLastName:  "Rivera",
			UserEmail:     "alex@example.com",
		}
		buf, err := handler.ExportApplicationList([]dbmodels.ApplicationExt{rec})
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Applications")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "Alex Rivera", rows[1][0])
		require.Equal(t, "alex@example.com", rows[1][1])
		require.Equal(t, "Toronto", rows[1][2])
		require.Equal(t, "dementia care, palliative care", rows[1][4])
		require.Equal(t, "under_review", rows[1][6])
		require.Equal(t, "pending_review", rows[1][7])
		require.Equal(t, "2026-08-01", rows[1][8])
	})
}
