// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package stats maps parsed GitHub API responses into report-ready
// profile statistics.
package stats

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/creachadair/ghstat/jsontree"
)

// A Profile aggregates the public statistics of one GitHub user.
type Profile struct {
	Login     string
	Name      string
	AvatarURL string
	Bio       string
	Location  string
	Blog      string

	Followers          int
	Following          int
	PublicRepos        int
	TotalStars         int
	TotalForks         int
	TotalContributions int

	Repos         []Repo
	Languages     []Language
	Contributions []ContributionDay

	GeneratedAt string // UTC stamp set by Finalize
}

// A Repo describes one public repository.
type Repo struct {
	Name        string
	Description string
	Language    string
	URL         string
	UpdatedAt   string
	Stars       int
	Forks       int
}

// A Language accumulates the source bytes attributed to one language
// across all counted repositories. The field tags define the wire
// shape consumed by the report's chart script.
type Language struct {
	Name  string  `json:"language"`
	Bytes int64   `json:"bytes"`
	Share float64 `json:"share"` // percentage of all counted bytes
}

// A ContributionDay is one day of the contribution calendar.
type ContributionDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Extract walks the parsed GraphQL response rooted at root and
// collects profile statistics. Missing or mistyped fields fall back
// to their defaults; only a response without data.user is an error.
// Forked repositories are skipped entirely.
func Extract(root jsontree.Value, fallbackLogin string) (*Profile, error) {
	user := jsontree.Path(root, "data", "user")
	if user == nil {
		return nil, errors.New("response missing user data")
	}

	p := &Profile{
		Login: jsontree.StringOr(jsontree.Field(user, "login"), fallbackLogin),
	}
	p.Name = jsontree.StringOr(jsontree.Field(user, "name"), p.Login)
	p.AvatarURL = jsontree.StringOr(jsontree.Field(user, "avatarUrl"), "")
	p.Bio = jsontree.StringOr(jsontree.Field(user, "bio"), "")
	p.Location = jsontree.StringOr(jsontree.Field(user, "location"), "")
	p.Blog = jsontree.StringOr(jsontree.Field(user, "websiteUrl"), "")
	p.Followers = jsontree.IntOr(jsontree.Path(user, "followers", "totalCount"), 0)
	p.Following = jsontree.IntOr(jsontree.Path(user, "following", "totalCount"), 0)
	p.PublicRepos = jsontree.IntOr(jsontree.Path(user, "repositoriesTotal", "totalCount"), 0)

	nodes := jsontree.Path(user, "repositories", "nodes")
	for i := 0; i < jsontree.Len(nodes); i++ {
		repo := jsontree.Index(nodes, i)
		if jsontree.BoolOr(jsontree.Field(repo, "isFork"), false) {
			continue
		}
		r := Repo{
			Name:        jsontree.StringOr(jsontree.Field(repo, "name"), ""),
			Description: jsontree.StringOr(jsontree.Field(repo, "description"), ""),
			Language:    jsontree.StringOr(jsontree.Path(repo, "primaryLanguage", "name"), "Unknown"),
			URL:         jsontree.StringOr(jsontree.Field(repo, "url"), ""),
			UpdatedAt:   jsontree.StringOr(jsontree.Field(repo, "updatedAt"), ""),
			Stars:       jsontree.IntOr(jsontree.Field(repo, "stargazerCount"), 0),
			Forks:       jsontree.IntOr(jsontree.Field(repo, "forkCount"), 0),
		}
		p.TotalStars += r.Stars
		p.TotalForks += r.Forks
		p.Repos = append(p.Repos, r)

		edges := jsontree.Path(repo, "languages", "edges")
		for j := 0; j < jsontree.Len(edges); j++ {
			edge := jsontree.Index(edges, j)
			name := jsontree.StringOr(jsontree.Path(edge, "node", "name"), "")
			if name == "" {
				continue
			}
			p.addLanguage(name, int64(jsontree.NumberOr(jsontree.Field(edge, "size"), 0)))
		}
	}

	cal := jsontree.Path(user, "contributionsCollection", "contributionCalendar")
	p.TotalContributions = jsontree.IntOr(jsontree.Field(cal, "totalContributions"), 0)
	weeks := jsontree.Field(cal, "weeks")
	for i := 0; i < jsontree.Len(weeks); i++ {
		days := jsontree.Field(jsontree.Index(weeks, i), "contributionDays")
		for j := 0; j < jsontree.Len(days); j++ {
			day := jsontree.Index(days, j)
			p.Contributions = append(p.Contributions, ContributionDay{
				Date:  jsontree.StringOr(jsontree.Field(day, "date"), ""),
				Count: jsontree.IntOr(jsontree.Field(day, "contributionCount"), 0),
			})
		}
	}
	return p, nil
}

// addLanguage merges bytes into the entry for name, appending a new
// entry in first-seen order if none exists.
func (p *Profile) addLanguage(name string, bytes int64) {
	for i := range p.Languages {
		if p.Languages[i].Name == name {
			p.Languages[i].Bytes += bytes
			return
		}
	}
	p.Languages = append(p.Languages, Language{Name: name, Bytes: bytes})
}

var timeNow = time.Now // swapped by tests

// Finalize orders and trims the collected statistics for rendering:
// repositories are sorted by stars, then forks, then name, keeping
// the top topRepos; language shares are computed as percentages of
// the total counted bytes and sorted by volume; the contribution
// trail keeps only the most recent maxDays entries. It also stamps
// GeneratedAt with the current UTC time.
func (p *Profile) Finalize(topRepos, maxDays int) {
	slices.SortFunc(p.Repos, func(a, b Repo) int {
		if c := cmp.Compare(b.Stars, a.Stars); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Forks, a.Forks); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if topRepos > 0 && len(p.Repos) > topRepos {
		p.Repos = p.Repos[:topRepos]
	}

	var total int64
	for _, lang := range p.Languages {
		total += lang.Bytes
	}
	for i := range p.Languages {
		if total > 0 {
			p.Languages[i].Share = float64(p.Languages[i].Bytes) / float64(total) * 100
		}
	}
	slices.SortFunc(p.Languages, func(a, b Language) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	if maxDays > 0 && len(p.Contributions) > maxDays {
		p.Contributions = p.Contributions[len(p.Contributions)-maxDays:]
	}

	p.GeneratedAt = timeNow().UTC().Format("2006-01-02 15:04 UTC")
}
