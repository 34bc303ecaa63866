package filesapimodels

import dbmodels "carelink-backend/models/db"

type FileView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ApplicationID string            `json:"application_id"`
	Type          dbmodels.FileType `json:"type"`
	ContentType   string            `json:"content_type"`
}

func Convert(rec dbmodels.FileStorage) FileView {
	return FileView{
		ID:            rec.ID,
		Name:          rec.Name,
		ApplicationID: rec.ApplicationID,
		Type:          rec.Type,
		ContentType:   rec.ContentType,
	}
}
