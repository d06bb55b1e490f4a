package obslist

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestRender_Golden(t *testing.T) {
	d := DefaultValues()
	entries := []Entry{
		d.NewEntry(1, "Deep field A", "F070W", "F444W", "sw1.cat", "lw1.cat"),
	}

	var buf bytes.Buffer
	if err := Render(&buf, entries); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `# Observation list created by obslist command in
# cmd/obslist. Note: all values except filters and
# observation names are default.

Observation1:
  Name: 'Deep field A'
  Date: 2019-07-04
  PAV3: 0.
  SW:
    Filter: F070W
    PointSourceCatalog: sw1.cat
    GalaxyCatalog: None
    ExtendedCatalog: None
    ExtendedScale: 1.0
    ExtendedCenter: 1024,1024
    MovingTargetList: None
    MovingTargetSersic: None
    MovingTargetExtended: None
    MovingTargetConvolveExtended: True
    MovingTargetToTrack: None
    BackgroundRate: 0.5
  LW:
    Filter: F444W
    PointSourceCatalog: lw1.cat
    GalaxyCatalog: None
    ExtendedCatalog: None
    ExtendedScale: 1.0
    ExtendedCenter: 1024,1024
    MovingTargetList: None
    MovingTargetSersic: None
    MovingTargetExtended: None
    MovingTargetConvolveExtended: True
    MovingTargetToTrack: None
    BackgroundRate: 1.2

`
	if got := buf.String(); got != want {
		t.Errorf("Render() mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

var blockHeading = regexp.MustCompile(`(?m)^` + headingPrefix + `\d+:`)

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := buf.String()
	if strings.Count(got, "\n") != 4 {
		t.Errorf("empty list should be the header only, got %q", got)
	}
	if blockHeading.MatchString(got) {
		t.Errorf("empty list should have no blocks, got %q", got)
	}
}

func TestRender_BlockPerEntry(t *testing.T) {
	d := DefaultValues()
	entries := []Entry{
		d.NewEntry(1, "a", "F070W", "F444W", "s", "l"),
		d.NewEntry(3, "b", "F150W", "F356W", "s", "l"),
		d.NewEntry(7, "c", "F200W", "F277W", "s", "l"),
	}

	var buf bytes.Buffer
	if err := Render(&buf, entries); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, heading := range []string{"\nObservation1:\n", "\nObservation3:\n", "\nObservation7:\n"} {
		if !strings.Contains(out, heading) {
			t.Errorf("output missing heading %q", strings.TrimSpace(heading))
		}
	}
	if n := strings.Count(out, "  SW:\n"); n != 3 {
		t.Errorf("SW sections = %d, want 3", n)
	}
	if !strings.HasSuffix(out, "BackgroundRate: 1.2\n\n") {
		t.Errorf("output should end with the last LW block and a blank line")
	}
}

func TestRender_CustomDefaults(t *testing.T) {
	d := DefaultValues()
	d.Date = "2022-01-01"
	d.BackgroundRateLW = "2.0"

	var buf bytes.Buffer
	if err := Render(&buf, []Entry{d.NewEntry(1, "x", "F070W", "F444W", "s", "l")}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "  Date: 2022-01-01\n") {
		t.Errorf("custom date not rendered:\n%s", out)
	}
	if !strings.Contains(out, "    BackgroundRate: 2.0\n") {
		t.Errorf("custom LW background rate not rendered:\n%s", out)
	}
	if !strings.Contains(out, "    BackgroundRate: 0.5\n") {
		t.Errorf("SW background rate should keep its default:\n%s", out)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"", "''"},
		{"Sky's edge", "'Sky''s edge'"},
		{"''", "''''''"},
		{"a: b # c", "'a: b # c'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntry_Heading(t *testing.T) {
	if got := (Entry{Number: 12}).Heading(); got != "Observation12" {
		t.Errorf("Heading() = %q, want %q", got, "Observation12")
	}
}
