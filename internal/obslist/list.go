// Package obslist renders observation-list files for the NIRCam simulator
// from the observations and filters extracted out of an APT proposal.
//
// An observation list is a YAML-compatible text file with one block per
// observation, each carrying a short-wavelength and a long-wavelength
// channel. Only the observation name, the filters and the point-source
// catalogs vary between blocks; every other field comes from Defaults.
package obslist

import "strconv"

// Defaults holds the fixed field values written into every block.
//
// Values are kept as the exact tokens that appear in the file, so that
// "0." stays "0." and "None" is not confused with an empty value.
type Defaults struct {
	Date                         string
	PAV3                         string
	GalaxyCatalog                string
	ExtendedCatalog              string
	ExtendedScale                string
	ExtendedCenter               string
	MovingTargetList             string
	MovingTargetSersic           string
	MovingTargetExtended         string
	MovingTargetConvolveExtended string
	MovingTargetToTrack          string
	BackgroundRateSW             string
	BackgroundRateLW             string
}

// DefaultValues returns the standard defaults.
func DefaultValues() Defaults {
	return Defaults{
		Date:                         "2019-07-04",
		PAV3:                         "0.",
		GalaxyCatalog:                "None",
		ExtendedCatalog:              "None",
		ExtendedScale:                "1.0",
		ExtendedCenter:               "1024,1024",
		MovingTargetList:             "None",
		MovingTargetSersic:           "None",
		MovingTargetExtended:         "None",
		MovingTargetConvolveExtended: "True",
		MovingTargetToTrack:          "None",
		BackgroundRateSW:             "0.5",
		BackgroundRateLW:             "1.2",
	}
}

// Channel is the SW or LW section of one observation block.
type Channel struct {
	Filter                       string `yaml:"Filter"`
	PointSourceCatalog           string `yaml:"PointSourceCatalog"`
	GalaxyCatalog                string `yaml:"GalaxyCatalog"`
	ExtendedCatalog              string `yaml:"ExtendedCatalog"`
	ExtendedScale                string `yaml:"ExtendedScale"`
	ExtendedCenter               string `yaml:"ExtendedCenter"`
	MovingTargetList             string `yaml:"MovingTargetList"`
	MovingTargetSersic           string `yaml:"MovingTargetSersic"`
	MovingTargetExtended         string `yaml:"MovingTargetExtended"`
	MovingTargetConvolveExtended string `yaml:"MovingTargetConvolveExtended"`
	MovingTargetToTrack          string `yaml:"MovingTargetToTrack"`
	BackgroundRate               string `yaml:"BackgroundRate"`
}

// Entry is one observation block.
type Entry struct {
	// Number is the block heading suffix: the observation's zero-based
	// position in the proposal plus one.
	Number int     `yaml:"-"`
	Name   string  `yaml:"Name"`
	Date   string  `yaml:"Date"`
	PAV3   string  `yaml:"PAV3"`
	SW     Channel `yaml:"SW"`
	LW     Channel `yaml:"LW"`
}

// Heading returns the block key, e.g. "Observation3".
func (e Entry) Heading() string {
	return headingPrefix + strconv.Itoa(e.Number)
}

// List is a decoded observation-list file.
type List struct {
	Entries []Entry
}

// Len returns the number of observation blocks.
func (l *List) Len() int {
	return len(l.Entries)
}

// Numbers returns the heading numbers in file order.
func (l *List) Numbers() []int {
	out := make([]int, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Number
	}
	return out
}

// channel builds a channel from the defaults with the given background rate.
func (d Defaults) channel(filter, catalog, backgroundRate string) Channel {
	return Channel{
		Filter:                       filter,
		PointSourceCatalog:           catalog,
		GalaxyCatalog:                d.GalaxyCatalog,
		ExtendedCatalog:              d.ExtendedCatalog,
		ExtendedScale:                d.ExtendedScale,
		ExtendedCenter:               d.ExtendedCenter,
		MovingTargetList:             d.MovingTargetList,
		MovingTargetSersic:           d.MovingTargetSersic,
		MovingTargetExtended:         d.MovingTargetExtended,
		MovingTargetConvolveExtended: d.MovingTargetConvolveExtended,
		MovingTargetToTrack:          d.MovingTargetToTrack,
		BackgroundRate:               backgroundRate,
	}
}

// NewEntry builds the block for one observation.
func (d Defaults) NewEntry(number int, name, swFilter, lwFilter, swCatalog, lwCatalog string) Entry {
	return Entry{
		Number: number,
		Name:   name,
		Date:   d.Date,
		PAV3:   d.PAV3,
		SW:     d.channel(swFilter, swCatalog, d.BackgroundRateSW),
		LW:     d.channel(lwFilter, lwCatalog, d.BackgroundRateLW),
	}
}
