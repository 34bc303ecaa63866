package xlsexport

import (
	"bytes"
	"strings"

	"carelink-backend/models"
	dbmodels "carelink-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.ApplicationExt) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Name", "Email", "Location", "Experience (years)", "Specialties", "Step", "Status", "Stage", "Submitted"}

func (i impl) ExportApplicationList(list []dbmodels.ApplicationExt) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		_, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Applications")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.ApplicationExt, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, strings.TrimSpace(item.UserFirstName+" "+item.UserLastName)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.UserEmail); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.PreferredWorkLocation); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.YearsOfExperience); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, strings.Join(item.Specialties, ", ")); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.ApplicationStep); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		col++
		stage := models.StageStatusFor(item.Status, item.ApplicationStep)
		if err := writeColumn(f, sheet, col, row, string(stage)); err != nil {
			return row, err
		}

		col++
		if !item.CreatedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("2006-01-02")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
