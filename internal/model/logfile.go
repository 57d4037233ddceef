package model

import "time"

// LogFile represents one uploaded log file stored on disk.
// This is a pure domain model with no filesystem-specific dependencies or tags;
// it can be used across layers (HTTP, service, storage) without coupling
// to the on-disk layout.
type LogFile struct {
	Name         string    `json:"name"`
	StorageKey   string    `json:"storage_key"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	SavedAt      time.Time `json:"saved_at"`
}
