package dataset

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// ReadList reads image file names, one per line, from a list file. Blank
// lines are skipped. A positive limit stops reading after that many names.
func ReadList(path string, limit int) ([]string, error) {
	//nolint:gosec // G304: list path is supplied by the operator
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if limit > 0 && len(names) >= limit {
			break
		}
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return names, nil
}

// Shuffle permutes names in place using rng.
func Shuffle(rng *rand.Rand, names []string) {
	rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
}
