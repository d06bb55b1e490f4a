package obslist

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/obslist/internal/apt"
	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/Iron-Ham/obslist/internal/logging"
	"github.com/spf13/afero"
)

// Dimensions are the lengths of the seven per-observation sequences that
// must agree before a list is written.
type Dimensions struct {
	CatalogsSW   int
	CatalogsLW   int
	FiltersSW    int
	FiltersLW    int
	Observations int
	Indices      int
	Labels       int
}

// Lengths returns the lengths in a fixed order.
func (d Dimensions) Lengths() []int {
	return []int{d.CatalogsSW, d.CatalogsLW, d.FiltersSW, d.FiltersLW, d.Observations, d.Indices, d.Labels}
}

// Consistent reports whether all lengths are equal.
func (d Dimensions) Consistent() bool {
	lengths := d.Lengths()
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return false
		}
	}
	return true
}

func (d Dimensions) String() string {
	return fmt.Sprint(d.Lengths())
}

// Result describes a written observation list.
type Result struct {
	Count   int
	Path    string
	Numbers []int
}

// Writer converts APT proposals into observation-list files.
type Writer struct {
	fs       afero.Fs
	reader   *apt.Reader
	defaults Defaults
	logger   *logging.Logger
	summary  io.Writer
}

// Option configures a Writer.
type Option func(*Writer)

// WithDefaults replaces the default field values.
func WithDefaults(d Defaults) Option {
	return func(w *Writer) {
		w.defaults = d
	}
}

// WithLogger sets the logger for the writer and its proposal reader.
func WithLogger(l *logging.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSummaryOutput sets where the success summary is printed. It
// defaults to os.Stdout; nil discards it.
func WithSummaryOutput(out io.Writer) Option {
	return func(w *Writer) {
		if out == nil {
			out = io.Discard
		}
		w.summary = out
	}
}

// NewWriter creates a Writer that reads proposals from and writes lists to fs.
func NewWriter(fs afero.Fs, opts ...Option) *Writer {
	w := &Writer{
		fs:       fs,
		defaults: DefaultValues(),
		logger:   logging.NopLogger(),
		summary:  os.Stdout,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.reader = apt.NewReader(fs, apt.WithLogger(w.logger))
	return w
}

// Write converts the proposal at xmlPath into an observation list at
// outputPath, replacing any existing file.
//
// psCatSW and psCatLW give the point-source catalog for each retained
// observation. pointingPath is accepted for compatibility and not read.
// On any error the output file is left untouched.
func (w *Writer) Write(xmlPath, pointingPath, outputPath string, psCatSW, psCatLW []string) (*Result, error) {
	log := w.logger.WithProposal(xmlPath)
	if pointingPath != "" {
		log.Debug("pointing file not read", "pointing", pointingPath)
	}

	entries, err := w.Entries(xmlPath, outputPath, psCatSW, psCatLW)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Render(&buf, entries); err != nil {
		return nil, errors.NewObservationListError("failed to render observation list", err).
			WithOutputPath(outputPath)
	}

	if err := atomicWriteFile(w.fs, outputPath, buf.Bytes(), 0644); err != nil {
		return nil, errors.NewObservationListError("failed to write observation list",
			fmt.Errorf("%w: %w", errors.ErrOutputWrite, err)).
			WithOutputPath(outputPath).
			WithSeverity(errors.SeverityCritical)
	}

	result := &Result{Count: len(entries), Path: outputPath}
	for _, e := range entries {
		result.Numbers = append(result.Numbers, e.Number)
	}

	log.Info("observation list written", "output", outputPath, "observations", result.Count)
	fmt.Fprintf(w.summary, "\nSuccessfully wrote %d observations to %s\n", result.Count, outputPath)
	return result, nil
}

// Entries extracts the proposal at xmlPath and assembles its blocks
// without writing anything. outputPath only names the destination in
// the dimension-mismatch error.
func (w *Writer) Entries(xmlPath, outputPath string, psCatSW, psCatLW []string) ([]Entry, error) {
	set, err := w.reader.ExtractObservations(xmlPath)
	if err != nil {
		return nil, err
	}
	table, err := w.reader.ExtractFilterTable(xmlPath)
	if err != nil {
		return nil, err
	}
	filters, err := apt.DeriveFiltersPerObservation(table)
	if err != nil {
		return nil, err
	}

	dims := Dimensions{
		CatalogsSW:   len(psCatSW),
		CatalogsLW:   len(psCatLW),
		FiltersSW:    len(filters.SW),
		FiltersLW:    len(filters.LW),
		Observations: len(set.Observations),
		Indices:      len(set.Indices),
		Labels:       len(set.Labels),
	}
	if !dims.Consistent() {
		w.logger.Error("per-observation lengths differ",
			"proposal", xmlPath,
			"output", outputPath,
			"lengths", dims.String())
		return nil, errors.NewValidationError(fmt.Sprintf("will not write %s", outputPath)).
			WithField("dimensions").
			WithValue(dims).
			WithCause(errors.ErrDimensionMismatch)
	}

	entries := make([]Entry, set.Len())
	for i := range entries {
		number := set.Indices[i] + 1
		entries[i] = w.defaults.NewEntry(number, set.Labels[i],
			filters.SW[i], filters.LW[i], psCatSW[i], psCatLW[i])
		w.logger.WithObservation(number).Debug("observation assembled",
			"label", set.Labels[i],
			"sw_filter", filters.SW[i],
			"lw_filter", filters.LW[i])
	}
	return entries, nil
}

// atomicWriteFile writes data to a temp file beside path and renames it
// into place, so path is never left partially written.
func atomicWriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := afero.TempFile(fs, dir, ".obslist-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = fs.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fs.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
