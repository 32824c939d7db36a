// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program ghstat fetches a GitHub user's public profile statistics
// and renders them as a static HTML report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/creachadair/ghstat/github"
	"github.com/creachadair/ghstat/jsontree"
	"github.com/creachadair/ghstat/report"
	"github.com/creachadair/ghstat/stats"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const version = "0.1.0"

var cli struct {
	User    string           `help:"GitHub username to report on." short:"u" env:"GITHUB_USERNAME" required:""`
	Token   string           `help:"GitHub API token." env:"GITHUB_TOKEN,GH_STATS_TOKEN"`
	Output  string           `help:"Path of the generated HTML report." short:"o" default:"docs/index.html" type:"path"`
	Input   string           `help:"Parse a saved API response from this file instead of querying the API." short:"i" type:"path"`
	Top     int              `help:"Number of spotlight repositories to keep." default:"6"`
	Days    int              `help:"Number of trailing contribution days to chart." default:"120"`
	Timeout time.Duration    `help:"Timeout for the API request." default:"30s"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("ghstat"),
		kong.Description("Generate a static HTML report of GitHub profile statistics."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	if err := run(); err != nil {
		fail(err)
	}
}

func run() error {
	data, err := fetchInput()
	if err != nil {
		return err
	}
	root, err := jsontree.Parse(data)
	if err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	profile, err := stats.Extract(root, cli.User)
	if err != nil {
		return err
	}
	profile.Finalize(cli.Top, cli.Days)

	if dir := filepath.Dir(cli.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(cli.Output)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Render(f, profile); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("Site updated for %s -> %s\n", profile.Login, cli.Output)
	return nil
}

// fetchInput returns the raw API response, either read from a file
// given with --input or fetched live from the GitHub API.
func fetchInput() ([]byte, error) {
	if cli.Input != "" {
		data, err := os.ReadFile(cli.Input)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	if cli.Token == "" {
		return nil, errors.New("missing GitHub token (set GITHUB_TOKEN or GH_STATS_TOKEN)")
	}
	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()
	return github.New(cli.Token).FetchUserStats(ctx, cli.User)
}

// fail reports err on stderr, in color when stderr is a terminal, and
// exits nonzero.
func fail(err error) {
	out := colorable.NewColorableStderr()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(out, "\x1b[31mghstat: %v\x1b[0m\n", err)
	} else {
		fmt.Fprintf(out, "ghstat: %v\n", err)
	}
	os.Exit(1)
}
