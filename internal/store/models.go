package store

import "time"

// Fingerprint is the last hash seen for one group of one row of one source.
type Fingerprint struct {
	Source    string `gorm:"primaryKey;size:512"`
	RowKey    string `gorm:"primaryKey;size:512"`
	Group     string `gorm:"primaryKey;size:256;column:hash_group"`
	Hash      string `gorm:"not null"`
	RunID     string `gorm:"index;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Run is one pass of the pipeline over a source.
type Run struct {
	ID         string `gorm:"primaryKey;size:36"`
	Source     string `gorm:"index;size:512"`
	Mapping    string
	Algorithm  string `gorm:"size:32"`
	Encoding   string `gorm:"size:32"`
	StartedAt  time.Time
	FinishedAt *time.Time
	Rows       int64
	Hashed     int64
	Filtered   int64
	New        int64
	Changed    int64
	Unchanged  int64
	Error      string
}
