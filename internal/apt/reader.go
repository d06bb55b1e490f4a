// Package apt reads observation metadata out of APT (Astronomer's Proposal
// Tool) XML exports.
//
// Two passes are offered. ExtractObservations walks the DataRequests
// section and returns the observations taken with a recognized instrument,
// together with their original positions and labels. ExtractFilterTable
// does a fuller pass over the same observations and flattens their
// templates into one record per tile and filter configuration;
// DeriveFiltersPerObservation then collapses that table to one filter
// pair per observation.
package apt

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/Iron-Ham/obslist/internal/logging"
	"github.com/spf13/afero"
)

// Namespace is the APT document namespace.
const Namespace = "http://www.stsci.edu/JWST/APT"

// Instruments that produce observation-list entries.
const (
	InstrumentNIRCam = "NIRCAM"
	InstrumentWFSC   = "WFSC"
)

// EmptyLabel is the label reported for an observation whose Label element
// has no text. It matches the None placeholder used by the list defaults.
const EmptyLabel = "None"

// RecognizedInstruments returns the instruments whose observations are kept.
func RecognizedInstruments() []string {
	return []string{InstrumentNIRCam, InstrumentWFSC}
}

// IsRecognizedInstrument reports whether instrument text selects an observation.
// The comparison is exact, as APT writes the enumeration verbatim.
func IsRecognizedInstrument(instrument string) bool {
	return slices.Contains(RecognizedInstruments(), instrument)
}

// Observation is one retained Observation element.
type Observation struct {
	// Index is the zero-based position among all observations in the
	// DataRequests section, counting those that were not retained.
	Index      int
	Instrument string
	Label      string
	// Number is the APT observation number text, empty if absent.
	Number string
}

// ObservationSet holds the retained observations as three parallel
// sequences in document order.
type ObservationSet struct {
	Observations []Observation
	Indices      []int
	Labels       []string
}

// Len returns the number of retained observations.
func (s *ObservationSet) Len() int {
	return len(s.Observations)
}

// Reader extracts observation data from APT files on a filesystem.
type Reader struct {
	fs     afero.Fs
	logger *logging.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReader creates a Reader over fs.
func NewReader(fs afero.Fs, opts ...Option) *Reader {
	r := &Reader{fs: fs, logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// parse opens path and builds its element tree.
func (r *Reader) parse(path string) (*Node, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open proposal %s", path)
	}
	defer f.Close()

	root, err := parseTree(f)
	if err != nil {
		return nil, errors.NewProposalError("failed to parse XML",
			fmt.Errorf("%w: %v", errors.ErrProposalParse, err)).WithPath(path)
	}
	return root, nil
}

// observationNodes returns every APT Observation element under the root's
// DataRequests child, in document order.
func (r *Reader) observationNodes(path string) ([]*Node, error) {
	root, err := r.parse(path)
	if err != nil {
		return nil, err
	}

	requests := root.Child(Namespace, "DataRequests")
	if requests == nil {
		return nil, errors.NewProposalError("no DataRequests element under the document root", errors.ErrProposalStructure).
			WithPath(path).
			WithElement("DataRequests")
	}
	return requests.Descendants(Namespace, "Observation"), nil
}

// ExtractObservations returns the observations whose instrument is
// recognized, with their original positions and labels.
func (r *Reader) ExtractObservations(path string) (*ObservationSet, error) {
	nodes, err := r.observationNodes(path)
	if err != nil {
		return nil, err
	}
	log := r.logger.WithProposal(path)

	set := &ObservationSet{}
	for i, node := range nodes {
		instrument := node.Child(Namespace, "Instrument")
		if instrument == nil {
			return nil, errors.NewProposalError("observation has no Instrument element", errors.ErrProposalStructure).
				WithPath(path).
				WithElement("Instrument").
				WithObservation(i)
		}
		if !IsRecognizedInstrument(instrument.Text) {
			log.Debug("skipping observation", "index", i, "instrument", instrument.Text)
			continue
		}

		label := node.Child(Namespace, "Label")
		if label == nil {
			return nil, errors.NewProposalError("observation has no Label element", errors.ErrProposalStructure).
				WithPath(path).
				WithElement("Label").
				WithObservation(i)
		}

		obs := Observation{
			Index:      i,
			Instrument: instrument.Text,
			Label:      label.Text,
		}
		if obs.Label == "" {
			obs.Label = EmptyLabel
		}
		if number := node.Child(Namespace, "Number"); number != nil {
			obs.Number = number.Text
		}

		set.Observations = append(set.Observations, obs)
		set.Indices = append(set.Indices, i)
		set.Labels = append(set.Labels, obs.Label)
	}

	log.Info("observations extracted", "retained", set.Len(), "total", len(nodes))
	return set, nil
}
