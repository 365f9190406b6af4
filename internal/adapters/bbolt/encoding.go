// Gob encoding for scored record blobs.
//
// Run metadata stays JSON so the store is inspectable with plain tools; the
// records blob is the dominant payload and gob keeps it compact without a
// custom binary format.
package bbolt

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/corey/secframe/internal/ports"
)

// encodeRecords serializes a scored record set with gob.
func encodeRecords(records []ports.ScoredRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeRecords restores a scored record set from its gob blob.
func decodeRecords(data []byte) ([]ports.ScoredRecord, error) {
	var records []ports.ScoredRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
