// Package testutil provides APT proposal fixtures for obslist tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// Filters is one NIRCam filter pair (short wavelength, long wavelength).
type Filters struct {
	SW string
	LW string
}

// Proposal wraps observation fragments in an APT JwstProposal document
// with a single ObservationGroup under DataRequests.
func Proposal(observations ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<JwstProposal xmlns="http://www.stsci.edu/JWST/APT" xmlns:nci="http://www.stsci.edu/JWST/APT/Template/NircamImaging" xmlns:wfscga="http://www.stsci.edu/JWST/APT/Template/WfscGlobalAlignment" schemaVersion="60">
  <ProposalInformation>
    <Title>Fixture proposal</Title>
  </ProposalInformation>
  <DataRequests>
    <ObservationGroup>
      <Label>Fixture group</Label>
`)
	for _, obs := range observations {
		b.WriteString(obs)
		b.WriteString("\n")
	}
	b.WriteString(`    </ObservationGroup>
  </DataRequests>
</JwstProposal>
`)
	return b.String()
}

// Observation renders one Observation element with an arbitrary template body.
func Observation(number int, label, instrument, template string) string {
	return fmt.Sprintf(`      <Observation>
        <Number>%d</Number>
        <Label>%s</Label>
        <Instrument>%s</Instrument>
        <Template>%s</Template>
      </Observation>`, number, label, instrument, template)
}

// NircamImaging renders a NircamImaging template with one FilterConfig per pair.
func NircamImaging(filters ...Filters) string {
	var b strings.Builder
	b.WriteString("<nci:NircamImaging><nci:Module>ALL</nci:Module><nci:Filters>")
	for _, f := range filters {
		fmt.Fprintf(&b, "<nci:FilterConfig><nci:ShortFilter>%s</nci:ShortFilter><nci:LongFilter>%s</nci:LongFilter><nci:ReadoutPattern>RAPID</nci:ReadoutPattern></nci:FilterConfig>", f.SW, f.LW)
	}
	b.WriteString("</nci:Filters></nci:NircamImaging>")
	return b.String()
}

// NircamObservation is shorthand for an NIRCAM observation using NircamImaging.
func NircamObservation(number int, label string, filters ...Filters) string {
	return Observation(number, label, "NIRCAM", NircamImaging(filters...))
}

// TwoNircamProposal is the reference fixture: two NIRCAM observations with
// distinct labels and filters.
func TwoNircamProposal() string {
	return Proposal(
		NircamObservation(1, "Deep field A", Filters{SW: "F070W", LW: "F444W"}),
		NircamObservation(2, "Deep field B", Filters{SW: "F150W", LW: "F356W"}),
	)
}

// WriteMemProposal stores content in fs at path and returns path.
func WriteMemProposal(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()

	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// WriteProposal writes content to name inside a fresh temp directory and
// returns the full path.
func WriteProposal(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}
