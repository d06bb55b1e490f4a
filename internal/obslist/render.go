package obslist

import (
	"io"
	"strings"
	"text/template"
)

const headingPrefix = "Observation"

const listTemplate = `{{define "channel"}}    Filter: {{.Filter}}
    PointSourceCatalog: {{.PointSourceCatalog}}
    GalaxyCatalog: {{.GalaxyCatalog}}
    ExtendedCatalog: {{.ExtendedCatalog}}
    ExtendedScale: {{.ExtendedScale}}
    ExtendedCenter: {{.ExtendedCenter}}
    MovingTargetList: {{.MovingTargetList}}
    MovingTargetSersic: {{.MovingTargetSersic}}
    MovingTargetExtended: {{.MovingTargetExtended}}
    MovingTargetConvolveExtended: {{.MovingTargetConvolveExtended}}
    MovingTargetToTrack: {{.MovingTargetToTrack}}
    BackgroundRate: {{.BackgroundRate}}
{{end}}# Observation list created by obslist command in
# cmd/obslist. Note: all values except filters and
# observation names are default.

{{range .}}{{.Heading}}:
  Name: {{quote .Name}}
  Date: {{.Date}}
  PAV3: {{.PAV3}}
  SW:
{{template "channel" .SW}}  LW:
{{template "channel" .LW}}
{{end}}`

var tmpl = template.Must(template.New("observation-list").
	Funcs(template.FuncMap{"quote": quote}).
	Parse(listTemplate))

// Render writes the header comment followed by one block per entry, in
// order. Each block ends with a blank line.
func Render(w io.Writer, entries []Entry) error {
	return tmpl.Execute(w, entries)
}

// quote renders s as a YAML single-quoted scalar.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
