// Package dictionary bulk loads weighted word lists into a suggestion index.
//
// A word list starts with a header line (usually the record count) followed
// by one "<weight>\t<word>" record per line.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bastiangx/wordkit/pkg/errs"
	"github.com/bastiangx/wordkit/pkg/hashmap"
	"github.com/charmbracelet/log"
)

// Indexer receives the loaded terms. *suggest.Index satisfies it.
type Indexer interface {
	IndexTerm(text string, weight int64) error
}

// Stats provides statistics about the loading process
type Stats struct {
	Lines      int // records read, header excluded
	Indexed    int // distinct words indexed
	Skipped    int // malformed records and words outside the alphabet
	Duplicates int // records repeating an earlier word
}

func (s *Stats) add(o Stats) {
	s.Lines += o.Lines
	s.Indexed += o.Indexed
	s.Skipped += o.Skipped
	s.Duplicates += o.Duplicates
}

// Loader reads word lists. The zero value is ready to use.
type Loader struct {
	// Capacity and LoadFactor size the map that tracks words already seen.
	Capacity   int
	LoadFactor float64
}

func (l Loader) seenSet() (*hashmap.Map[string, int64], error) {
	var opts []hashmap.Option[string, int64]
	if l.Capacity > 0 {
		opts = append(opts, hashmap.WithCapacity[string, int64](l.Capacity))
	}
	if l.LoadFactor != 0 {
		opts = append(opts, hashmap.WithLoadFactor[string, int64](l.LoadFactor))
	}
	return hashmap.New(opts...)
}

// Load reads a word list from r. Malformed records are skipped; when a word
// repeats, the last record wins.
func (l Loader) Load(r io.Reader, idx Indexer) (Stats, error) {
	var stats Stats

	seen, err := l.seenSet()
	if err != nil {
		return stats, fmt.Errorf("dictionary loader: %w", err)
	}

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return stats, fmt.Errorf("failed to read header: %w", err)
		}
		return stats, nil
	}

	lineNo := 1
	for scanner.Scan() {
		lineNo++
		stats.Lines++

		text, weight, ok := parseRecord(scanner.Text())
		if !ok {
			log.Debugf("Skipping malformed record on line %d: %q", lineNo, scanner.Text())
			stats.Skipped++
			continue
		}

		if err := idx.IndexTerm(text, weight); err != nil {
			if errors.Is(err, errs.ErrInvalidArgument) {
				log.Debugf("Skipping line %d: %v", lineNo, err)
				stats.Skipped++
				continue
			}
			return stats, fmt.Errorf("failed to index line %d: %w", lineNo, err)
		}

		if _, dup := seen.Put(text, weight); dup {
			stats.Duplicates++
		} else {
			stats.Indexed++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read line %d: %w", lineNo+1, err)
	}

	log.Debugf("Loaded %d words from %d records (%d skipped, %d duplicates)",
		stats.Indexed, stats.Lines, stats.Skipped, stats.Duplicates)
	return stats, nil
}

// parseRecord splits "<weight>\t<word>" and lower-cases the word.
func parseRecord(line string) (string, int64, bool) {
	fields := strings.Split(strings.TrimSpace(line), "\t")
	if len(fields) != 2 {
		return "", 0, false
	}
	weight, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return "", 0, false
	}
	return strings.ToLower(strings.TrimSpace(fields[1])), weight, true
}

// LoadFile loads the word list at path.
func (l Loader) LoadFile(path string, idx Indexer) (Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	stats, err := l.Load(file, idx)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}

// LoadDir loads every .tsv and .txt word list in dir, in name order.
// Files that fail validation are skipped with a warning.
func (l Loader) LoadDir(dir string, idx Indexer) (Stats, error) {
	var total Stats

	var files []string
	for _, pattern := range []string{"*.tsv", "*.txt"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return total, fmt.Errorf("failed to scan for word lists: %w", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return total, fmt.Errorf("no word lists found in %s", dir)
	}
	slices.Sort(files)

	for _, file := range files {
		format, err := DetectFormat(file)
		if err != nil {
			log.Warnf("Skipping %s: %v", file, err)
			continue
		}
		log.Debugf("Loading %s (%s)", file, format)

		stats, err := l.LoadFile(file, idx)
		total.add(stats)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Load reads a word list from r with a default Loader.
func Load(r io.Reader, idx Indexer) (Stats, error) {
	return Loader{}.Load(r, idx)
}

// LoadFile loads the word list at path with a default Loader.
func LoadFile(path string, idx Indexer) (Stats, error) {
	return Loader{}.LoadFile(path, idx)
}
