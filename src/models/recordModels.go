package models

// RecordRequest is the bulk payload accepted by the record endpoints.
type RecordRequest struct {
	Collection string           `json:"collection"`
	Data       []map[string]any `json:"data"`
}
