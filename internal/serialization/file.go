package serialization

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/born-ml/digits/internal/network"
)

// Save writes net to path and its checksum to path+ChecksumSuffix.
//
// Both files are written to a temporary file in the same directory and
// renamed into place, so a crash never leaves a truncated model behind.
func Save(path string, net *network.Network) error {
	data, err := net.MarshalText()
	if err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	sum := ComputeChecksum(data)
	if err := writeFileAtomic(path+ChecksumSuffix, formatChecksum(sum, filepath.Base(path))); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}
	return nil
}

// Load reads a network saved by Save. When the checksum sidecar exists
// the file contents must match it.
func Load(path string) (*network.Network, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	//nolint:gosec // G304: sidecar path is derived from the model path
	line, err := os.ReadFile(path + ChecksumSuffix)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Model files written by other tools carry no sidecar.
	case err != nil:
		return nil, fmt.Errorf("failed to read checksum: %w", err)
	default:
		stored, err := parseChecksum(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path+ChecksumSuffix, err)
		}
		if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	net, err := network.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", path, err)
	}
	return nil
}
