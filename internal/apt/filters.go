package apt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Iron-Ham/obslist/internal/errors"
)

// Filter table column names.
const (
	ColumnShortFilter   = "ShortFilter"
	ColumnLongFilter    = "LongFilter"
	ColumnTileNumber    = "TileNumber"
	ColumnObservationID = "ObservationID"
)

// FilterRecord is one exposure row: a filter pair observed on one tile of
// one observation.
type FilterRecord struct {
	ShortFilter   string
	LongFilter    string
	TileNumber    int
	ObservationID string
}

// FilterTable is the flat per-exposure table built from a proposal, in
// document order.
type FilterTable struct {
	Records []FilterRecord
}

// Len returns the number of records.
func (t *FilterTable) Len() int {
	return len(t.Records)
}

// Column returns the values of the named column, one per record.
func (t *FilterTable) Column(name string) ([]string, error) {
	var get func(FilterRecord) string
	switch name {
	case ColumnShortFilter:
		get = func(r FilterRecord) string { return r.ShortFilter }
	case ColumnLongFilter:
		get = func(r FilterRecord) string { return r.LongFilter }
	case ColumnTileNumber:
		get = func(r FilterRecord) string { return strconv.Itoa(r.TileNumber) }
	case ColumnObservationID:
		get = func(r FilterRecord) string { return r.ObservationID }
	default:
		return nil, errors.NewNotFoundError("column", name)
	}

	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = get(r)
	}
	return out, nil
}

// ExtractFilterTable parses path and flattens the filter configuration of
// every retained observation into per-tile records.
//
// The observation-group identifier is the APT observation Number. An
// observation without one is identified by "#" and its one-based position,
// which cannot collide with a Number. Observations whose template declares
// no filters contribute no records.
func (r *Reader) ExtractFilterTable(path string) (*FilterTable, error) {
	nodes, err := r.observationNodes(path)
	if err != nil {
		return nil, err
	}
	log := r.logger.WithProposal(path)

	table := &FilterTable{}
	for i, node := range nodes {
		instrument := node.Child(Namespace, "Instrument")
		if instrument == nil || !IsRecognizedInstrument(instrument.Text) {
			continue
		}

		id := "#" + strconv.Itoa(i+1)
		if number := node.Child(Namespace, "Number"); number != nil && strings.TrimSpace(number.Text) != "" {
			id = strings.TrimSpace(number.Text)
		}

		tiles, err := tileCount(node)
		if err != nil {
			return nil, errors.NewProposalError(err.Error(), errors.ErrProposalStructure).
				WithPath(path).
				WithElement("MosaicParameters").
				WithObservation(i)
		}

		var pairs []filterPair
		if template := node.Child(Namespace, "Template"); template != nil {
			pairs, err = templateFilters(template)
			if err != nil {
				return nil, errors.NewProposalError(err.Error(), errors.ErrProposalStructure).
					WithPath(path).
					WithElement("Template").
					WithObservation(i)
			}
		}
		if len(pairs) == 0 {
			log.Warn("observation declares no filters", "index", i, "observation_id", id)
			continue
		}

		for tile := 1; tile <= tiles; tile++ {
			for _, p := range pairs {
				table.Records = append(table.Records, FilterRecord{
					ShortFilter:   p.short,
					LongFilter:    p.long,
					TileNumber:    tile,
					ObservationID: id,
				})
			}
		}
	}

	log.Debug("filter table extracted", "records", table.Len())
	return table, nil
}

type filterPair struct {
	short string
	long  string
}

// templateFilters collects the filter pairs of a Template element. NIRCam
// templates group them in FilterConfig elements; wavefront templates carry
// bare ShortFilter/LongFilter elements that are paired in order.
func templateFilters(template *Node) ([]filterPair, error) {
	var pairs []filterPair

	if configs := template.DescendantsLocal("FilterConfig"); len(configs) > 0 {
		for _, cfg := range configs {
			pairs = append(pairs, filterPair{
				short: localText(cfg, "ShortFilter"),
				long:  localText(cfg, "LongFilter"),
			})
		}
		return pairs, nil
	}

	shorts := template.DescendantsLocal("ShortFilter")
	longs := template.DescendantsLocal("LongFilter")
	if len(shorts) != len(longs) {
		return nil, fmt.Errorf("template has %d ShortFilter and %d LongFilter elements", len(shorts), len(longs))
	}
	for i := range shorts {
		pairs = append(pairs, filterPair{
			short: strings.TrimSpace(shorts[i].Text),
			long:  strings.TrimSpace(longs[i].Text),
		})
	}
	return pairs, nil
}

// tileCount returns Rows*Columns of the observation's mosaic, or 1.
func tileCount(observation *Node) (int, error) {
	mosaics := observation.DescendantsLocal("MosaicParameters")
	if len(mosaics) == 0 {
		return 1, nil
	}

	tiles := 1
	for _, dim := range []string{"Rows", "Columns"} {
		text := localText(mosaics[0], dim)
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid mosaic %s %q", strings.ToLower(dim), text)
		}
		tiles *= n
	}
	return tiles, nil
}

// localText returns the trimmed text of n's first child named local.
func localText(n *Node, local string) string {
	if c := n.ChildLocal(local); c != nil {
		return strings.TrimSpace(c.Text)
	}
	return ""
}

// FilterAssignment holds one filter pair per observation group.
type FilterAssignment struct {
	ObservationIDs []string
	SW             []string
	LW             []string
}

// Len returns the number of observation groups.
func (a *FilterAssignment) Len() int {
	return len(a.ObservationIDs)
}

// DeriveFiltersPerObservation collapses the table to one (SW, LW) pair per
// observation-group identifier, in the order identifiers first appear.
//
// Every record of a group must share its short-wavelength filter; the
// long-wavelength filter is taken from the group's first record without a
// uniqueness check.
func DeriveFiltersPerObservation(table *FilterTable) (*FilterAssignment, error) {
	ids, err := table.Column(ColumnObservationID)
	if err != nil {
		return nil, err
	}
	shorts, err := table.Column(ColumnShortFilter)
	if err != nil {
		return nil, err
	}
	longs, err := table.Column(ColumnLongFilter)
	if err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string][]int)
	for i, id := range ids {
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], i)
	}

	out := &FilterAssignment{}
	for _, id := range order {
		rows := groups[id]

		distinct := make(map[string]struct{})
		for _, row := range rows {
			distinct[shorts[row]] = struct{}{}
		}
		if len(distinct) > 1 {
			return nil, errors.NewValidationError("multiple filters in one observation").
				WithField(ColumnObservationID).
				WithValue(id).
				WithCause(errors.ErrMultipleFilters)
		}

		first := rows[0]
		out.ObservationIDs = append(out.ObservationIDs, id)
		out.SW = append(out.SW, shorts[first])
		out.LW = append(out.LW, longs[first])
	}
	return out, nil
}
