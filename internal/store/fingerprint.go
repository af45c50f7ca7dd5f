package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"row-hasher/internal/common"
)

// Status classifies a hash against the stored fingerprint.
type Status int

const (
	StatusNew Status = iota
	StatusChanged
	StatusUnchanged

	statusTotal = int(iota)
)

var statusNames = [statusTotal]string{
	StatusNew:       "new",
	StatusChanged:   "changed",
	StatusUnchanged: "unchanged",
}

func (s Status) String() string {
	if !common.IsInRange(0, int(s), statusTotal-1) {
		return common.UnknownStr
	}

	return statusNames[s]
}

// Lookup returns the stored fingerprint, or nil if there is none.
func (s *Store) Lookup(source, rowKey, group string) (*Fingerprint, error) {
	var fp Fingerprint

	err := s.db.Where("source = ? AND row_key = ? AND hash_group = ?", source, rowKey, group).First(&fp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("lookup fingerprint: %w", err)
	}

	return &fp, nil
}

// Compare classifies hash against the stored fingerprint and, unless the
// store is read-only, records hash as the new fingerprint.
func (s *Store) Compare(runID, source, rowKey, group, hash string) (Status, error) {
	prev, err := s.Lookup(source, rowKey, group)
	if err != nil {
		return 0, err
	}

	status := StatusNew

	switch {
	case prev == nil:
	case prev.Hash == hash:
		return StatusUnchanged, nil
	default:
		status = StatusChanged
	}

	if s.readOnly {
		return status, nil
	}

	fp := Fingerprint{Source: source, RowKey: rowKey, Group: group, Hash: hash, RunID: runID}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}, {Name: "row_key"}, {Name: "hash_group"}},
		DoUpdates: clause.AssignmentColumns([]string{"hash", "run_id", "updated_at"}),
	}).Create(&fp).Error
	if err != nil {
		return 0, fmt.Errorf("save fingerprint: %w", err)
	}

	return status, nil
}

// Count returns the number of fingerprints stored for source.
func (s *Store) Count(source string) (int64, error) {
	var n int64
	if err := s.db.Model(&Fingerprint{}).Where("source = ?", source).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count fingerprints: %w", err)
	}

	return n, nil
}

// BeginRun records the start of a run and assigns its ID.
func (s *Store) BeginRun(run *Run) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	if s.readOnly {
		return nil
	}

	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("begin run: %w", err)
	}

	return nil
}

// FinishRun stamps the run's end and saves its counters.
func (s *Store) FinishRun(run *Run) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	if s.readOnly {
		return nil
	}

	if err := s.db.Save(run).Error; err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	return nil
}

// Runs returns the most recent runs, newest first. A limit <= 0 returns all.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	var runs []Run
	if err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

// Tracker binds the store to one run of one source.
type Tracker struct {
	store  *Store
	runID  string
	source string
}

// Tracker returns a tracker recording fingerprints under run.
func (s *Store) Tracker(run *Run) *Tracker {
	return &Tracker{store: s, runID: run.ID, source: run.Source}
}

// Compare classifies hash for the row and group of the tracked source.
func (t *Tracker) Compare(rowKey, group, hash string) (Status, error) {
	return t.store.Compare(t.runID, t.source, rowKey, group, hash)
}
