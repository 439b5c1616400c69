package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrNotAFile = errors.New("path is not a file")
)

// FileLocator identifies one file in a repository. Ref is optional and
// defaults to the repository's default branch on reads.
type FileLocator struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// WriteRequest is an intent to create or update one file.
type WriteRequest struct {
	FileLocator
	Content []byte
	Message string
	Branch  string
}

type WriteResult struct {
	Path   string
	Branch string
}

// Client reads and writes repository files through the GitHub contents API.
type Client struct {
	token string
	hc    *http.Client // optional; for tests
}

func NewClient(token string) *Client {
	return &Client{token: token}
}

// NewClientWithHTTPClient returns a client that uses the given http.Client
// for API calls (e.g. in tests).
func NewClientWithHTTPClient(token string, hc *http.Client) *Client {
	return &Client{token: token, hc: hc}
}

func (c *Client) api(ctx context.Context) *github.Client {
	httpClient := c.hc
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return github.NewClient(httpClient)
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// ReadFile fetches the raw content of one file.
func (c *Client) ReadFile(ctx context.Context, loc FileLocator) ([]byte, error) {
	var opts *github.RepositoryContentGetOptions
	if loc.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: loc.Ref}
	}
	file, dir, _, err := c.api(ctx).Repositories.GetContents(ctx, loc.Owner, loc.Repo, loc.Path, opts)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", loc.Path, ErrNotFound)
		}
		return nil, err
	}
	if dir != nil || file == nil {
		return nil, fmt.Errorf("%s: %w", loc.Path, ErrNotAFile)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// WriteFile creates or updates one file. It probes for the current blob SHA
// first: a missing file commits without one, an existing file commits with
// the SHA just observed so the API rejects writes over newer content. A
// rejected stale SHA surfaces to the caller; there is no retry, so each
// request performs at most one commit attempt.
func (c *Client) WriteFile(ctx context.Context, req WriteRequest) (WriteResult, error) {
	client := c.api(ctx)
	branch := req.Branch
	if branch == "" {
		branch = "main"
	}

	var sha string
	file, dir, _, err := client.Repositories.GetContents(ctx, req.Owner, req.Repo, req.Path, &github.RepositoryContentGetOptions{Ref: branch})
	switch {
	case isNotFound(err):
		// create path, no SHA
	case err != nil:
		return WriteResult{}, err
	case dir == nil && file != nil && file.SHA != nil:
		// update path; a directory listing carries no usable blob SHA, so
		// anything else falls through without one.
		sha = *file.SHA
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(req.Message),
		Content: req.Content,
		Branch:  github.String(branch),
	}
	if sha == "" {
		_, _, err = client.Repositories.CreateFile(ctx, req.Owner, req.Repo, req.Path, opts)
	} else {
		opts.SHA = github.String(sha)
		_, _, err = client.Repositories.UpdateFile(ctx, req.Owner, req.Repo, req.Path, opts)
	}
	if err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Path: req.Path, Branch: branch}, nil
}
