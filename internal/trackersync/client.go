// Package trackersync mirrors the local task list against an external
// issue tracker over its REST API.
//
// Sync is best effort by design: pushes are fire-and-forget from the
// UI's perspective (failures are logged and surfaced as a notification,
// local state is never rolled back), and the pull poll is allowed to
// race local edits with last-write-wins semantics.
package trackersync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client is a typed wrapper around the tracker REST endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	teamID  string
}

// NewClient builds a client authenticating with the given token via an
// oauth2 static token source.
func NewClient(ctx context.Context, baseURL, token, teamID string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, src)
	hc.Timeout = 15 * time.Second
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		teamID:  teamID,
	}
}

func (c *Client) TeamID() string { return c.teamID }

// Teams lists the teams visible to the token.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var out []Team
	err := c.get(ctx, "/teams", nil, &out)
	return out, err
}

func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := c.get(ctx, "/projects", c.teamQuery(), &out)
	return out, err
}

func (c *Client) Cycles(ctx context.Context) ([]Cycle, error) {
	var out []Cycle
	err := c.get(ctx, "/cycles", c.teamQuery(), &out)
	return out, err
}

func (c *Client) Issues(ctx context.Context) ([]Issue, error) {
	var out []Issue
	err := c.get(ctx, "/issues", c.teamQuery(), &out)
	return out, err
}

func (c *Client) CreateIssue(ctx context.Context, is Issue) (Issue, error) {
	var out Issue
	err := c.do(ctx, http.MethodPost, "/issues", is, &out)
	return out, err
}

func (c *Client) UpdateIssue(ctx context.Context, id string, up IssueUpdate) (Issue, error) {
	var out Issue
	err := c.do(ctx, http.MethodPatch, "/issues/"+url.PathEscape(id), up, &out)
	return out, err
}

func (c *Client) Comments(ctx context.Context, issueID string) ([]Comment, error) {
	var out []Comment
	err := c.get(ctx, "/issues/"+url.PathEscape(issueID)+"/comments", nil, &out)
	return out, err
}

func (c *Client) Relations(ctx context.Context) ([]Relation, error) {
	var out []Relation
	err := c.get(ctx, "/relations", c.teamQuery(), &out)
	return out, err
}

func (c *Client) CreateRelation(ctx context.Context, rel Relation) (Relation, error) {
	var out Relation
	err := c.do(ctx, http.MethodPost, "/relations", rel, &out)
	return out, err
}

func (c *Client) teamQuery() url.Values {
	if c.teamID == "" {
		return nil
	}
	return url.Values{"team": []string{c.teamID}}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b)), URL: req.URL.String()}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type APIError struct {
	Status int
	Body   string
	URL    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker API %d from %s: %s", e.Status, e.URL, e.Body)
}
