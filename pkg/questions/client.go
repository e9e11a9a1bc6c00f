// Package questions fetches SAT practice questions from a remote content
// API whose response envelope is not consistent: the same endpoint may
// return a batch of questions or a single bare question object.
package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultURL is the public content API document the bot reads from.
	DefaultURL = "https://api.jsonsilo.com/public/942c3c3b-3a0c-4be3-81c2-12029def19f5"

	timeout = 10 * time.Second
	maxSize = 1 << 20 // 1 MiB.
)

// ErrNoData is returned when the content API responds with a
// well-formed but empty question batch.
var ErrNoData = errors.New("no questions available in the response")

// UpstreamError is a non-success HTTP response from the content API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("content API request failed with status %d: %s", e.StatusCode, e.Body)
}

// ParseError is a content API response body that matches neither of the
// two known envelope shapes. It wraps the diagnostic from the first
// (batch) parse attempt, which is usually the informative one.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse content API response: %s", e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// batch is the content API's usual envelope: all questions keyed by subject.
type batch struct {
	Math []Question `json:"math"`
}

// Client reads questions from the content API.
type Client struct {
	url  string
	http *http.Client
}

// NewClient returns a content API client for the given endpoint URL.
// An empty URL selects [DefaultURL].
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the current question set and picks one question from it,
// uniformly at random. The API is not fully trustworthy: the response is
// parsed first as a batch envelope, then as a single bare question.
func (c *Client) Fetch(ctx context.Context) (Question, error) {
	l := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return Question{}, fmt.Errorf("failed to construct HTTP request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Question{}, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSize))
	if err != nil {
		return Question{}, fmt.Errorf("failed to read HTTP response body: %w", err)
	}

	l.Debug().Int("status", resp.StatusCode).Int("body_size", len(body)).
		Msg("content API response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Question{}, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return pickQuestion(l, body)
}

// pickQuestion resolves the content API's two possible envelope shapes,
// in fixed order: batch first, single question as the fallback.
func pickQuestion(l *zerolog.Logger, body []byte) (Question, error) {
	var env batch
	err := json.Unmarshal(body, &env)
	if err == nil && env.Math != nil {
		if len(env.Math) == 0 {
			return Question{}, ErrNoData
		}
		q := env.Math[rand.IntN(len(env.Math))]
		if verr := q.validate(); verr != nil {
			return Question{}, &ParseError{err: verr}
		}
		return q, nil
	}
	if err == nil {
		err = errors.New(`missing "math" key in response object`)
	}

	l.Debug().AnErr("batch_parse", err).Msg("response is not a question batch")

	var q Question
	if err2 := json.Unmarshal(body, &q); err2 == nil && q.validate() == nil {
		return q, nil
	}

	// Neither shape matched: report the batch diagnostic, it is the
	// shape the API is supposed to return.
	return Question{}, &ParseError{err: err}
}

// validate rejects question objects that decoded structurally but are
// missing required fields. [json.Unmarshal] is lenient about absent keys,
// so shape resolution needs this check to tell the two envelopes apart.
func (q Question) validate() error {
	if q.Body.Question == "" {
		return errors.New(`missing "question" text`)
	}
	if q.Body.CorrectAnswer == "" {
		return errors.New(`missing "correct_answer"`)
	}
	c := q.Body.Choices
	if c.A == "" || c.B == "" || c.C == "" || c.D == "" {
		return errors.New("missing one or more answer choices")
	}
	return nil
}
