// Package aggregate rolls scored records up into corpus-level statistics:
// keyed buckets, period tables, window slices, and threshold selection.
// Everything here is deterministic and leaves its inputs untouched.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/corey/secframe/internal/ports"
)

// KeyFunc derives the bucket key for one scored record. An error or an
// empty key aborts the aggregation; the caller learns the record index.
type KeyFunc func(ports.ScoredRecord) (string, error)

// Bucket accumulates statistics for one grouping key.
type Bucket struct {
	Key           string
	Records       int
	IntensitySum  int
	EngagementSum int
	Categories    map[string]int
	Groups        map[string]int
}

func newBucket(key string) *Bucket {
	return &Bucket{
		Key:        key,
		Categories: make(map[string]int),
		Groups:     make(map[string]int),
	}
}

func (b *Bucket) add(sr ports.ScoredRecord) {
	b.Records++
	b.IntensitySum += sr.Intensity
	b.EngagementSum += sr.Engagement()
	for name, n := range sr.Categories {
		b.Categories[name] += n
	}
	for name, n := range sr.Groups {
		b.Groups[name] += n
	}
}

// MeanIntensity returns the bucket's mean intensity per record. ok is false
// when the bucket holds no records: an empty bucket has no mean, not a mean
// of zero.
func (b *Bucket) MeanIntensity() (float64, bool) {
	if b.Records == 0 {
		return 0, false
	}
	return float64(b.IntensitySum) / float64(b.Records), true
}

// GroupBy partitions records into buckets by the caller's key function.
// The first record whose key cannot be derived aborts the whole aggregation
// with an error naming the record's position.
func GroupBy(records []ports.ScoredRecord, key KeyFunc) (map[string]*Bucket, error) {
	buckets := make(map[string]*Bucket)
	for i, sr := range records {
		k, err := key(sr)
		if err != nil {
			return nil, fmt.Errorf("grouping record %d: %w", i, err)
		}
		if k == "" {
			return nil, fmt.Errorf("grouping record %d: empty grouping key", i)
		}
		b, ok := buckets[k]
		if !ok {
			b = newBucket(k)
			buckets[k] = b
		}
		b.add(sr)
	}
	return buckets, nil
}

// Sorted flattens a bucket map into ascending key order. The built-in
// period keys sort chronologically under this ordering.
func Sorted(buckets map[string]*Bucket) []*Bucket {
	out := make([]*Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Collect folds all records into one bucket carrying the given key.
func Collect(key string, records []ports.ScoredRecord) *Bucket {
	b := newBucket(key)
	for _, sr := range records {
		b.add(sr)
	}
	return b
}

// Window returns the records whose timestamps fall inside [from, to], both
// bounds inclusive, in input order.
func Window(records []ports.ScoredRecord, from, to time.Time) []ports.ScoredRecord {
	var out []ports.ScoredRecord
	for _, sr := range records {
		if sr.Timestamp.Before(from) || sr.Timestamp.After(to) {
			continue
		}
		out = append(out, sr)
	}
	return out
}

// TopByIntensity selects the records with Intensity >= threshold, sorted
// descending by intensity. The sort is stable, so equal intensities keep
// their input order. Threshold 0 selects everything. The input slice is
// never reordered.
func TopByIntensity(records []ports.ScoredRecord, threshold int) []ports.ScoredRecord {
	var out []ports.ScoredRecord
	for _, sr := range records {
		if sr.Intensity >= threshold {
			out = append(out, sr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Intensity > out[j].Intensity })
	return out
}
