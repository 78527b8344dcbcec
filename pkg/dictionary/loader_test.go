package dictionary

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordkit/pkg/errs"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const pokemon = `6
100	charizard
50	charmander
25	charmeleon
80	Blastoise
10	squirtle
60	bulbasaur
`

func newIndex(t *testing.T) *suggest.Index {
	t.Helper()
	idx, err := suggest.NewIndex(10)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestLoad(t *testing.T) {
	idx := newIndex(t)

	stats, err := Load(strings.NewReader(pokemon), idx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Stats{Lines: 6, Indexed: 6}, stats); diff != "" {
		t.Errorf("Load() stats mismatch (-want +got):\n%s", diff)
	}

	if n, _ := idx.CountWithPrefix("char"); n != 3 {
		t.Errorf("CountWithPrefix(char) = %d, want 3", n)
	}
	term, ok, _ := idx.Lookup("blastoise")
	if !ok || term.Weight != 80 {
		t.Errorf("Lookup(blastoise) = %v, %v; want lower-cased word with weight 80", term, ok)
	}
}

func TestLoadSkipsBadRecords(t *testing.T) {
	input := strings.Join([]string{
		"9",
		"100\tcharizard",
		"not-a-number\tpikachu",
		"42",
		"1\t2\tthree",
		"",
		"7\tmr. mime",
		"  30\tsquirtle  ",
		"5\tcharizard",
	}, "\n")

	idx := newIndex(t)
	stats, err := Load(strings.NewReader(input), idx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Stats{Lines: 8, Indexed: 2, Skipped: 5, Duplicates: 1}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("Load() stats mismatch (-want +got):\n%s", diff)
	}
	if idx.Size() != 2 {
		t.Errorf("Size() = %d, want 2", idx.Size())
	}
	// last record wins
	if term, _, _ := idx.Lookup("charizard"); term.Weight != 5 {
		t.Errorf("charizard weight = %d, want 5", term.Weight)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	for _, input := range []string{"", "0\n", "0"} {
		idx := newIndex(t)
		stats, err := Load(strings.NewReader(input), idx)
		if err != nil {
			t.Errorf("Load(%q) error = %v", input, err)
		}
		if stats != (Stats{}) || idx.Size() != 0 {
			t.Errorf("Load(%q) = %+v, size %d; want nothing loaded", input, stats, idx.Size())
		}
	}
}

type failingIndexer struct{ err error }

func (f failingIndexer) IndexTerm(string, int64) error { return f.err }

func TestLoadPropagatesIndexErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(strings.NewReader(pokemon), failingIndexer{boom})
	if !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
}

func TestLoaderRejectsBadLoadFactor(t *testing.T) {
	_, err := Loader{LoadFactor: -1}.Load(strings.NewReader(pokemon), newIndex(t))
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("Load() error = %v, want ErrInvalidArgument", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pokemon.tsv", pokemon)

	idx := newIndex(t)
	stats, err := Loader{Capacity: 4, LoadFactor: 0.5}.LoadFile(path, idx)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if stats.Indexed != 6 || idx.Size() != 6 {
		t.Errorf("LoadFile() indexed %d, size %d; want 6", stats.Indexed, idx.Size())
	}

	_, err = LoadFile(filepath.Join(dir, "missing.tsv"), idx)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_starters.tsv", "3\n100\tcharizard\n50\tcharmander\n25\tcharmeleon\n")
	writeFile(t, dir, "b_water.txt", "2\n80\tblastoise\n10\tsquirtle\n")
	writeFile(t, dir, "c_broken.tsv", "1\nno tabs here\n")
	writeFile(t, dir, "notes.md", "ignored")

	idx := newIndex(t)
	stats, err := Loader{}.LoadDir(dir, idx)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if diff := cmp.Diff(Stats{Lines: 5, Indexed: 5}, stats); diff != "" {
		t.Errorf("LoadDir() stats mismatch (-want +got):\n%s", diff)
	}

	if _, err := (Loader{}).LoadDir(t.TempDir(), idx); err == nil {
		t.Error("LoadDir(empty dir) returned no error")
	}
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    FileFormat
		wantErr bool
	}{
		{"words.tsv", pokemon, FormatTSV, false},
		{"words.txt", pokemon, FormatText, false},
		{"header.tsv", "0\n", FormatTSV, false},
		{"empty.tsv", "", FormatUnknown, true},
		{"spaces.tsv", "1\n100 charizard\n", FormatUnknown, true},
		{"words.bin", pokemon, FormatUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.content)
			got, err := DetectFormat(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
