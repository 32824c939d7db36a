// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package report_test

import (
	"bytes"
	"testing"

	"github.com/creachadair/ghstat/report"
	"github.com/creachadair/ghstat/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *stats.Profile {
	return &stats.Profile{
		Login:              "octocat",
		Name:               "Octo <Cat> & Friends",
		AvatarURL:          "https://example.com/a.png",
		Bio:                "Ship early",
		Location:           "Parts Unknown",
		Blog:               "https://octocat.example.com",
		Followers:          42,
		Following:          7,
		PublicRepos:        12,
		TotalStars:         321,
		TotalForks:         55,
		TotalContributions: 999,
		Repos: []stats.Repo{
			{
				Name:        "zeta",
				Description: "Tools & toys",
				Language:    "Go",
				URL:         "https://github.com/octocat/zeta",
				UpdatedAt:   "2026-08-20T12:00:00Z",
				Stars:       300,
				Forks:       50,
			},
		},
		Languages: []stats.Language{
			{Name: "Go", Bytes: 1200, Share: 63.157895},
			{Name: "Rust", Bytes: 700, Share: 36.842105},
		},
		Contributions: []stats.ContributionDay{
			{Date: "2026-08-26", Count: 7},
		},
		GeneratedAt: "2026-08-27 06:30 UTC",
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, testProfile()))
	html := buf.String()

	// User-controlled text is escaped.
	assert.Contains(t, html, "Octo &lt;Cat&gt; &amp; Friends")
	assert.Contains(t, html, "Tools &amp; toys")
	assert.NotContains(t, html, "Octo <Cat>")

	// Stat cards carry the computed totals.
	assert.Contains(t, html, `<p class="stat-card__value">321</p>`)
	assert.Contains(t, html, `<p class="stat-card__value">42</p>`)
	assert.Contains(t, html, `<p class="stat-card__value">999</p>`)

	// Language table rounds shares to two decimals.
	assert.Contains(t, html, "<th scope=\"row\">Go</th><td>63.16%</td><td>1200</td>")

	// Repository card links out and trims the timestamp to a date.
	assert.Contains(t, html, `<a href="https://github.com/octocat/zeta"`)
	assert.Contains(t, html, "2026-08-20")
	assert.NotContains(t, html, "2026-08-20T12")

	// Chart datasets are embedded as plain JSON.
	assert.Contains(t, html, `"language":"Go"`)
	assert.Contains(t, html, `{"date":"2026-08-26","count":7}`)

	assert.Contains(t, html, "Generated on 2026-08-27 06:30 UTC")
}

func TestRender_empty(t *testing.T) {
	p := &stats.Profile{Login: "ghost", Name: "ghost", GeneratedAt: "2026-08-27 06:30 UTC"}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, p))
	html := buf.String()

	assert.Contains(t, html, "No language information available yet.")
	assert.Contains(t, html, "No contribution data available.")
	assert.Contains(t, html, "No repositories to show yet.")
	assert.Contains(t, html, "const languageData = [];")
	assert.Contains(t, html, "const contributionData = [];")
}
