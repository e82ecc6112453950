package models

// CachedPhoto maps a local image path to the Telegram file_id returned
// after the first upload, so subsequent sends skip the upload entirely
type CachedPhoto struct {
	ID     int64  `json:"id" db:"id"`
	Path   string `json:"path" db:"photo"`
	FileID string `json:"file_id" db:"file_id"`
}
