package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rpggio/propcatalog/internal/domain/project"
)

// DefaultRemoteTimeout bounds a single remote fetch.
const DefaultRemoteTimeout = 15 * time.Second

// Remote fetches the catalog from a JSON endpoint. Each fetch runs on a clone
// of one configured collector so limits and transport are shared.
type Remote struct {
	url       string
	collector *colly.Collector
	logger    *slog.Logger
}

// NewRemote creates a remote source for url.
func NewRemote(url string, timeout time.Duration, logger *slog.Logger) *Remote {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent("propcatalog"),
	)
	c.SetRequestTimeout(timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
		logger.Debug("fetching remote catalog", "url", r.URL.String())
	})

	return &Remote{url: url, collector: c, logger: logger}
}

// Fetch implements catalog.Source. Non-2xx responses and undecodable bodies
// are errors. A canceled ctx returns at once; the abandoned request runs on
// until the collector's request timeout.
func (r *Remote) Fetch(ctx context.Context) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan remoteResult, 1)
	go func() {
		projects, err := r.visit()
		done <- remoteResult{projects: projects, err: err}
	}()

	select {
	case <-ctx.Done():
		r.logger.Debug("remote catalog fetch abandoned", "url", r.url, "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return res.projects, nil
	}
}

type remoteResult struct {
	projects []project.Project
	err      error
}

// visit runs one synchronous request on a fresh clone of the collector.
func (r *Remote) visit() ([]project.Project, error) {
	c := r.collector.Clone()

	var (
		projects []project.Project
		fetchErr error
	)
	c.OnResponse(func(resp *colly.Response) {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			fetchErr = fmt.Errorf("remote catalog returned status %d", resp.StatusCode)
			return
		}
		projects, fetchErr = DecodeJSON(resp.Body)
	})
	c.OnError(func(resp *colly.Response, err error) {
		r.logger.Warn("remote catalog request failed", "url", r.url, "status", resp.StatusCode, "error", err)
		fetchErr = fmt.Errorf("remote catalog request failed (status %d): %w", resp.StatusCode, err)
	})

	if err := c.Visit(r.url); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("remote catalog request failed: %w", err)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	return projects, nil
}

// DecodeJSON decodes either a Document or a bare JSON array of projects.
func DecodeJSON(data []byte) ([]project.Project, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []project.Project
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nonNil(list), nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nonNil(doc.Projects), nil
}
