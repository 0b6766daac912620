package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Metadata is the paging block of list responses.
type Metadata struct {
	Pages int `json:"pages"`
}

// Envelope is the backend response wrapper: {"data": T, "metadata": {...}}.
type Envelope[T any] struct {
	Data     T         `json:"data"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Page is one decoded page of a list endpoint.
type Page[T any] struct {
	Rows       []T
	TotalPages int
}

// GetEnvelope fetches a single-entity endpoint returning {"data": T}.
func GetEnvelope[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	raw, err := c.do(ctx, "GET", path, query, nil)
	if err != nil {
		return zero, err
	}
	data, err := unwrapData(path, raw)
	if err != nil {
		return zero, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, &ParseError{Path: path, Reason: fmt.Sprintf("decode data: %v", err)}
	}
	return v, nil
}

// GetPage fetches a list endpoint whose body is
// {"data": {"data": [T...], "metadata": {"pages": N}}}.
// A page count of 0 (empty result) is reported as 1.
func GetPage[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	raw, err := c.do(ctx, "GET", path, query, nil)
	if err != nil {
		return Page[T]{}, err
	}
	return decodePage[T](path, raw)
}

func decodePage[T any](path string, raw []byte) (Page[T], error) {
	outer, err := unwrapData(path, raw)
	if err != nil {
		return Page[T]{}, err
	}

	var inner struct {
		Data     json.RawMessage `json:"data"`
		Metadata *Metadata       `json:"metadata"`
	}
	if err := json.Unmarshal(outer, &inner); err != nil {
		return Page[T]{}, &ParseError{Path: path, Reason: "data is not an object"}
	}
	if len(inner.Data) == 0 || inner.Data[0] != '[' {
		return Page[T]{}, &ParseError{Path: path, Reason: "data.data is not an array"}
	}
	if inner.Metadata == nil {
		return Page[T]{}, &ParseError{Path: path, Reason: "data.metadata is missing"}
	}
	if inner.Metadata.Pages < 0 {
		return Page[T]{}, &ParseError{Path: path, Reason: fmt.Sprintf("negative page count %d", inner.Metadata.Pages)}
	}

	rows := make([]T, 0)
	if err := json.Unmarshal(inner.Data, &rows); err != nil {
		return Page[T]{}, &ParseError{Path: path, Reason: fmt.Sprintf("decode rows: %v", err)}
	}

	pages := inner.Metadata.Pages
	if pages == 0 {
		pages = 1
	}
	return Page[T]{Rows: rows, TotalPages: pages}, nil
}

func unwrapData(path string, raw []byte) (json.RawMessage, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ParseError{Path: path, Reason: "body is not a JSON object"}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, &ParseError{Path: path, Reason: "data is missing"}
	}
	return env.Data, nil
}
