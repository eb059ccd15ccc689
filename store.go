package dlf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
)

// FilterStore persists designed filters keyed by name. The search
// result is optional; implementations must return ErrNotFound from
// Load for unknown names.
type FilterStore interface {
	// Save stores a filter (and optionally its search result) under
	// the given name, replacing any previous entry.
	Save(name string, f *Filter, res *Result) error

	// Load retrieves a previously stored filter. The result is nil if
	// none was stored alongside the filter.
	Load(name string) (*Filter, *Result, error)
}

// DirStore persists filters as one JSON file per name inside a
// directory, created on first save.
type DirStore struct {
	dir string
}

// NewDirStore returns a store writing to the given directory.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

const (
	storeDirPerm  = 0o755
	storeFilePerm = 0o644
	storeFileExt  = ".json"
)

type storedRecord struct {
	Filter *Filter       `json:"filter"`
	Result *storedResult `json:"result,omitempty"`
}

// Save implements FilterStore.
func (s *DirStore) Save(name string, f *Filter, res *Result) error {
	if err := os.MkdirAll(s.dir, storeDirPerm); err != nil {
		return fmt.Errorf("creating filter directory: %w", err)
	}

	data, err := json.MarshalIndent(storedRecord{Filter: f, Result: toStoredResult(res)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding filter %q: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, storeFilePerm); err != nil {
		return fmt.Errorf("writing filter %q: %w", name, err)
	}
	return nil
}

// Load implements FilterStore.
func (s *DirStore) Load(name string) (*Filter, *Result, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("reading filter %q: %w", name, err)
	}

	var rec storedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, fmt.Errorf("decoding filter %q: %w", name, err)
	}
	return rec.Filter, rec.Result.toResult(), nil
}

func (s *DirStore) path(name string) string {
	return filepath.Join(s.dir, name+storeFileExt)
}

// scoreValue round-trips non-finite scores through JSON, which has no
// representation for them: infinities and NaN (candidates that broke
// down immediately) are stored as null and restored as +Inf.
type scoreValue float64

func (v scoreValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (v *scoreValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = scoreValue(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = scoreValue(f)
	return nil
}

type storedResult struct {
	Spacing       float64        `json:"spacing"`
	Shift         float64        `json:"shift"`
	Score         scoreValue     `json:"score"`
	SpacingValues []float64      `json:"spacingValues"`
	ShiftValues   []float64      `json:"shiftValues"`
	Surface       [][]scoreValue `json:"surface"`
	Evaluations   int            `json:"evaluations"`
	Refined       bool           `json:"refined"`
}

func toStoredResult(res *Result) *storedResult {
	if res == nil {
		return nil
	}
	surface := make([][]scoreValue, len(res.Surface))
	for i, row := range res.Surface {
		surface[i] = make([]scoreValue, len(row))
		for j, v := range row {
			surface[i][j] = scoreValue(v)
		}
	}
	return &storedResult{
		Spacing:       res.Spacing,
		Shift:         res.Shift,
		Score:         scoreValue(res.Score),
		SpacingValues: res.SpacingValues,
		ShiftValues:   res.ShiftValues,
		Surface:       surface,
		Evaluations:   res.Evaluations,
		Refined:       res.Refined,
	}
}

func (sr *storedResult) toResult() *Result {
	if sr == nil {
		return nil
	}
	surface := make([][]float64, len(sr.Surface))
	for i, row := range sr.Surface {
		surface[i] = make([]float64, len(row))
		for j, v := range row {
			surface[i][j] = float64(v)
		}
	}
	return &Result{
		Spacing:       sr.Spacing,
		Shift:         sr.Shift,
		Score:         float64(sr.Score),
		SpacingValues: sr.SpacingValues,
		ShiftValues:   sr.ShiftValues,
		Surface:       surface,
		Evaluations:   sr.Evaluations,
		Refined:       sr.Refined,
	}
}
