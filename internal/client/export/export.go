// Package export downloads CSV exports of list endpoints and saves them to
// the export directory.
package export

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/filex"
	"github.com/dmitrijs2005/hustleadmin/internal/logging"
)

// DefaultFilename is used when no filename is given.
const DefaultFilename = "export.csv"

// RawGetter fetches a response body without decoding it. *api.Client
// satisfies it.
type RawGetter interface {
	GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Result reports the outcome of one export.
type Result struct {
	Success bool
	Path    string
	Bytes   int
	Err     error
}

type Exporter struct {
	getter RawGetter
	dir    string
	log    logging.Logger
}

func New(getter RawGetter, dir string, log logging.Logger) *Exporter {
	if log == nil {
		log = logging.Nop()
	}
	return &Exporter{getter: getter, dir: dir, log: log}
}

// CSV requests endpoint with download=true and the given columns and writes
// the body to the export directory. Nothing is written when the request
// fails.
func (e *Exporter) CSV(ctx context.Context, endpoint string, columns []string, filename string, extra url.Values) Result {
	if filename == "" {
		filename = DefaultFilename
	}

	q := url.Values{}
	for k, vs := range extra {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("download", "true")
	q.Set("columns", strings.Join(columns, ","))

	data, err := e.getter.GetRaw(ctx, endpoint, q)
	if err != nil {
		e.log.Error(ctx, "export download failed", "endpoint", endpoint, "error", err)
		return Result{Err: err}
	}

	dir, err := filex.EnsureDir(e.dir)
	if err != nil {
		e.log.Error(ctx, "export directory unavailable", "dir", e.dir, "error", err)
		return Result{Err: err}
	}

	path, err := filex.WriteFileAtomic(dir, filename, data)
	if err != nil {
		e.log.Error(ctx, "error saving export", "file", filename, "error", err)
		return Result{Err: err}
	}

	e.log.Info(ctx, "export saved", "endpoint", endpoint, "path", path, "bytes", len(data))
	return Result{Success: true, Path: path, Bytes: len(data)}
}
