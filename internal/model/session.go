package model

import "time"

// SessionState remembers what the user last opened.
type SessionState struct {
	LastDir     string    `json:"last_dir"`
	LastVariant string    `json:"last_variant"`
	RecentDirs  []string  `json:"recent_dirs"`
	UpdatedAt   time.Time `json:"updated_at"`
}
