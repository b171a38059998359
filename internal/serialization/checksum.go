package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// ChecksumSuffix is appended to a model path to name its checksum sidecar.
const ChecksumSuffix = ".sha256"

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader.
// This is useful for computing checksums of large files without loading them entirely into memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return fmt.Errorf("%w: got %x, want %x", ErrChecksumMismatch, computed, stored)
	}
	return nil
}

// formatChecksum renders sum the way sha256sum does: "<hex>  <name>\n".
func formatChecksum(sum [32]byte, name string) []byte {
	return []byte(hex.EncodeToString(sum[:]) + "  " + name + "\n")
}

// parseChecksum reads the digest from a sha256sum line. The file name
// field is optional and ignored.
func parseChecksum(line []byte) ([32]byte, error) {
	var sum [32]byte
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return sum, fmt.Errorf("%w: empty", ErrInvalidChecksum)
	}
	digest := fields[0]
	if len(digest) != hex.EncodedLen(len(sum)) {
		return sum, fmt.Errorf("%w: digest has %d characters", ErrInvalidChecksum, len(digest))
	}
	if _, err := hex.Decode(sum[:], digest); err != nil {
		return sum, fmt.Errorf("%w: %w", ErrInvalidChecksum, err)
	}
	return sum, nil
}
