// Package bbolt implements the ports.Storage interface using bbolt (embedded
// B+ tree). A top-level "runs" bucket holds one sub-bucket per run id with
// two keys: "meta" (JSON) and "records" (gob). Writes are transactional — a
// crash mid-write cannot corrupt previously committed runs.
package bbolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/secframe/internal/ports"
)

// Bucket keys
var (
	bucketRuns = []byte("runs")
	keyMeta    = []byte("meta")
	keyRecords = []byte("records")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists a run's metadata and scored records.
// Overwrites any prior run with the same id.
func (s *Store) SaveRun(meta ports.RunMeta, records []ports.ScoredRecord) error {
	if meta.ID == "" {
		return fmt.Errorf("empty run id")
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal run meta: %w", err)
	}
	recordsBlob, err := encodeRecords(records)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		runs, err := tx.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		id := []byte(meta.ID)
		if runs.Bucket(id) != nil {
			if err := runs.DeleteBucket(id); err != nil {
				return err
			}
		}
		rb, err := runs.CreateBucket(id)
		if err != nil {
			return err
		}
		if err := rb.Put(keyMeta, metaJSON); err != nil {
			return err
		}
		return rb.Put(keyRecords, recordsBlob)
	})
}

// LoadRun retrieves one run by id. Returns ports.ErrRunNotFound when the id
// is unknown.
func (s *Store) LoadRun(id string) (ports.RunMeta, []ports.ScoredRecord, error) {
	var metaJSON, recordsBlob []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if runs == nil {
			return nil
		}
		rb := runs.Bucket([]byte(id))
		if rb == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := rb.Get(keyMeta); v != nil {
			metaJSON = make([]byte, len(v))
			copy(metaJSON, v)
		}
		if v := rb.Get(keyRecords); v != nil {
			recordsBlob = make([]byte, len(v))
			copy(recordsBlob, v)
		}
		return nil
	})
	if err != nil {
		return ports.RunMeta{}, nil, err
	}

	if metaJSON == nil {
		return ports.RunMeta{}, nil, fmt.Errorf("run %q: %w", id, ports.ErrRunNotFound)
	}

	var meta ports.RunMeta
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return ports.RunMeta{}, nil, fmt.Errorf("unmarshal run meta: %w", err)
	}

	var records []ports.ScoredRecord
	if recordsBlob != nil {
		records, err = decodeRecords(recordsBlob)
		if err != nil {
			return ports.RunMeta{}, nil, err
		}
	}

	return meta, records, nil
}

// ListRuns returns metadata for every stored run, newest first.
func (s *Store) ListRuns() ([]ports.RunMeta, error) {
	var metas []ports.RunMeta

	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if runs == nil {
			return nil
		}
		c := runs.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if v != nil {
				continue // only sub-buckets hold runs
			}
			rb := runs.Bucket(k)
			data := rb.Get(keyMeta)
			if data == nil {
				continue
			}
			var meta ports.RunMeta
			if err := json.Unmarshal(data, &meta); err != nil {
				return fmt.Errorf("unmarshal run %s meta: %w", k, err)
			}
			metas = append(metas, meta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas, nil
}

// LatestRun retrieves the most recently created run. Returns
// ports.ErrRunNotFound when the store holds no runs.
func (s *Store) LatestRun() (ports.RunMeta, []ports.ScoredRecord, error) {
	metas, err := s.ListRuns()
	if err != nil {
		return ports.RunMeta{}, nil, err
	}
	if len(metas) == 0 {
		return ports.RunMeta{}, nil, ports.ErrRunNotFound
	}
	return s.LoadRun(metas[0].ID)
}

// DeleteRun removes one run. Idempotent: deleting a nonexistent run is not
// an error.
func (s *Store) DeleteRun(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if runs == nil {
			return nil
		}
		if err := runs.DeleteBucket([]byte(id)); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}

// Wipe removes every stored run. Idempotent.
func (s *Store) Wipe() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketRuns); err == bolt.ErrBucketNotFound {
			return nil
		} else {
			return err
		}
	})
}
