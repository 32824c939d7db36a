// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package report renders profile statistics as a static HTML page.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/creachadair/ghstat/stats"
)

//go:embed report.tmpl
var reportText string

var reportTmpl = template.Must(template.New("report").Parse(reportText))

// page is the root value the template executes against. Chart
// datasets are pre-encoded so the script block receives plain JSON
// rather than doubly-escaped text.
type page struct {
	*stats.Profile
	LanguageData     template.JS
	ContributionData template.JS
}

// Render writes the HTML report for p to w. All user-controlled text
// is escaped by the template engine.
func Render(w io.Writer, p *stats.Profile) error {
	langData, err := chartJSON(p.Languages)
	if err != nil {
		return fmt.Errorf("encode language data: %w", err)
	}
	contribData, err := chartJSON(p.Contributions)
	if err != nil {
		return fmt.Errorf("encode contribution data: %w", err)
	}
	return reportTmpl.Execute(w, page{
		Profile:          p,
		LanguageData:     langData,
		ContributionData: contribData,
	})
}

// chartJSON encodes vs for inclusion in the chart script, mapping a
// nil slice to an empty JSON array.
func chartJSON[T any](vs []T) (template.JS, error) {
	if len(vs) == 0 {
		return template.JS("[]"), nil
	}
	data, err := json.Marshal(vs)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}
