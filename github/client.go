// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package github fetches user statistics from the GitHub GraphQL API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "ghstat-client"
)

// userQuery selects the profile fields, the top repositories by star
// count with their per-language byte sizes, and the contribution
// calendar for one user.
const userQuery = `query ($login: String!) {
  user(login: $login) {
    login
    name
    avatarUrl
    bio
    location
    websiteUrl
    followers { totalCount }
    following { totalCount }
    repositoriesTotal: repositories(ownerAffiliations: OWNER, privacy: PUBLIC) { totalCount }
    repositories(first: 100, ownerAffiliations: OWNER, privacy: PUBLIC, orderBy: {field: STARGAZERS, direction: DESC}) {
      nodes {
        name
        description
        stargazerCount
        forkCount
        url
        updatedAt
        isFork
        primaryLanguage { name }
        languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
          edges { size node { name } }
        }
      }
    }
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays { date contributionCount }
        }
      }
    }
  }
}`

// A Client issues authenticated requests against the GitHub API.
// The zero value is not ready for use; call New.
type Client struct {
	Token string // API token, sent as a bearer credential

	// BaseURL is the root of the API. If empty, the public endpoint
	// is used. Tests point this at a local server.
	BaseURL string

	// HTTPClient is used to issue requests. If nil, it defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

// New returns a Client authenticated with token.
func New(token string) *Client { return &Client{Token: token} }

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// A StatusError reports a non-success response from the API, carrying
// the HTTP status code and an excerpt of the response body.
type StatusError struct {
	Code int
	Body string
}

// Error satisfies the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("github api status %d: %s", e.Code, e.Body)
}

// FetchUserStats posts the statistics query for login and returns the
// raw response body. The caller is responsible for parsing the
// result; see the stats package.
func (c *Client) FetchUserStats(ctx context.Context, login string) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     userQuery,
		"variables": map[string]string{"login": login},
	})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL()+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("User-Agent", userAgent)

	rsp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("post query: %w", err)
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if rsp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: rsp.StatusCode, Body: excerpt(body)}
	}
	return body, nil
}

// excerpt returns at most 200 bytes of body for use in error text.
func excerpt(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
