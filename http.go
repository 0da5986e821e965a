package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const maxDrainBody = 64 << 10

var errTrailingData = errors.New("unexpected data after top-level value")

// APIError is either a non-200 answer (StatusCode set) or a transport
// failure (Err set).
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("endpoint request failed: %s", e.Err)
	}

	return fmt.Sprintf("endpoint returned status code: %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("endpoint returned malformed JSON: %s", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type APIClient struct {
	client   *http.Client
	endpoint string
	token    string
	log      zerolog.Logger
}

func NewAPIClient(endpoint, token string, timeout time.Duration, log zerolog.Logger) *APIClient {
	return &APIClient{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
		log:      log,
	}
}

// Fetch asks for every homework updated since from (epoch seconds) and
// returns the decoded body untouched. Shape checks are up to the caller.
func (c *APIClient) Fetch(ctx context.Context, from int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		apiErr := &APIError{Err: err}
		c.log.Error().Err(err).Str("endpoint", c.endpoint).Msg(apiErr.Error())
		return nil, apiErr
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBody))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		c.log.Error().Int("status", resp.StatusCode).Str("endpoint", c.endpoint).Msg(apiErr.Error())
		return nil, apiErr
	}

	body, err := decodeBody(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("endpoint", c.endpoint).Msg("endpoint returned malformed JSON")
		return nil, &ParseError{Err: err}
	}

	return body, nil
}

// decodeBody wants exactly one JSON value, trailing data is an error.
func decodeBody(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errTrailingData
	}

	return body, nil
}
