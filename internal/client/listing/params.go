package listing

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
)

// Filter is the status filter of a listing.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterSuspended Filter = "suspended"
)

var (
	ErrInvalidPage     = errors.New("page must be 1 or greater")
	ErrInvalidPageSize = errors.New("page size must be 10, 25 or 50")
	ErrInvalidFilter   = errors.New("unknown filter")
)

// PageSizes are the page sizes a listing accepts.
var PageSizes = []int{10, 25, 50}

// Params is what a FetchFunc receives for one request.
type Params struct {
	PageNo  int
	LimitNo int
	Search  string
	// Status is nil when the filter is "all".
	Status *bool
	// Deps holds the extra dependencies, e.g. the parent task id.
	Deps map[string]string
}

// Values renders the query string of a list endpoint. status is present only
// when the filter is not "all"; Deps are not part of the query.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("pageNo", strconv.Itoa(p.PageNo))
	v.Set("limitNo", strconv.Itoa(p.LimitNo))
	v.Set("search", p.Search)
	if p.Status != nil {
		v.Set("status", strconv.FormatBool(*p.Status))
	}
	return v
}

// Page is one page of rows as returned by a FetchFunc.
type Page[T any] struct {
	Rows       []T
	TotalPages int
}

// FetchFunc loads one page for the given parameters.
type FetchFunc[T any] func(ctx context.Context, p Params) (Page[T], error)

// StatusParam maps a filter to the boolean status parameter: "all" omits it,
// "active" is true and anything else is false.
func StatusParam(f Filter) *bool {
	if f == FilterAll {
		return nil
	}
	v := f == FilterActive
	return &v
}

// Query is the reactive input of a Controller.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Filter   Filter
	Deps     map[string]string
}

func (q Query) params() Params {
	return Params{
		PageNo:  q.Page,
		LimitNo: q.PageSize,
		Search:  q.Search,
		Status:  StatusParam(q.Filter),
		Deps:    copyDeps(q.Deps),
	}
}

func copyDeps(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DepKeys returns the dependency keys in a stable order.
func (q Query) DepKeys() []string {
	keys := make([]string, 0, len(q.Deps))
	for k := range q.Deps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}
