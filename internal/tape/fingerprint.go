package tape

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// fingerprintDomain provides domain separation for record fingerprints.
// The version suffix enables future algorithm migration.
const fingerprintDomain = "retrace/record/v1"

// Fingerprint computes a content-addressed identity for a log record:
// SHA-256 over the NFC-normalized, HTML-escape-free JSON encoding, with
// domain separation. The same record always produces the same
// fingerprint, which the archive uses to deduplicate re-pushed tapes.
//
// Fingerprints are identity only; they are never part of the JSONL wire
// format.
func Fingerprint(rec LogRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("fingerprint record %q: %w", rec.Name, err)
	}

	// NFC normalization keeps equivalent Unicode spellings from
	// producing distinct fingerprints. Map keys are already sorted by
	// encoding/json, so the encoding is deterministic.
	normalized := norm.NFC.Bytes(bytes.TrimSpace(buf.Bytes()))

	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00}) // Null separator between domain and payload
	h.Write(normalized)
	return hex.EncodeToString(h.Sum(nil)), nil
}
