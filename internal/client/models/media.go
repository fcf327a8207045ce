package models

import "time"

// MediaItem is a local cache record mirroring one file on the remote file
// store. The remote listing is ground truth; this record is derived and
// reconciled, keyed by URL.
type MediaItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}
