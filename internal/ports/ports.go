// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned by Storage.LoadRun and Storage.LatestRun when
// the requested run does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// Record is one corpus row as the loader hands it to the scoring core.
// Text is a pointer: a row whose text cell was missing or blank carries nil
// and scores zero on every category. Timestamp and the engagement counters
// are validated by the loader; malformed rows never reach the core.
type Record struct {
	Text      *string   `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Likes     int       `json:"likes"`
	Retweets  int       `json:"retweets"`
	Replies   int       `json:"replies"`
}

// Body returns the text to code, or the empty string when the cell was missing.
func (r Record) Body() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// Engagement is the total interaction count: likes + retweets + replies.
func (r Record) Engagement() int {
	return r.Likes + r.Retweets + r.Replies
}

// ScoredRecord is a Record plus its dictionary coding.
//
// Categories holds one entry per category in the dictionary store, zeros
// included, so downstream consumers never distinguish "absent" from "zero".
// Groups holds the per-group sums of those counts. Intensity is fixed at
// scoring time and always equals the sum of the composite groups' totals;
// it is never recomputed downstream.
type ScoredRecord struct {
	Record
	Categories map[string]int `json:"categories"`
	Groups     map[string]int `json:"groups"`
	Intensity  int            `json:"intensity"`
}

// RunMeta describes one persisted analysis run.
type RunMeta struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Records   int       `json:"records"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
}

// Storage persists analysis runs to durable storage. The backing store
// (bbolt) namespaces each run by its id. Writes are transactional: a crash
// mid-save must not corrupt previously committed runs.
type Storage interface {
	// SaveRun persists a run's metadata and its full scored record set.
	// Overwrites any prior run with the same id.
	SaveRun(meta RunMeta, records []ScoredRecord) error

	// LoadRun retrieves one run by id.
	// Returns ErrRunNotFound when the id is unknown.
	LoadRun(id string) (RunMeta, []ScoredRecord, error)

	// ListRuns returns metadata for every stored run, newest first.
	ListRuns() ([]RunMeta, error)

	// LatestRun retrieves the most recently created run.
	// Returns ErrRunNotFound when the store holds no runs.
	LatestRun() (RunMeta, []ScoredRecord, error)

	// DeleteRun removes one run. Idempotent: deleting a nonexistent run
	// is not an error.
	DeleteRun(id string) error

	// Wipe removes every stored run. Idempotent.
	Wipe() error
}
