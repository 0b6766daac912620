package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

var ErrInvalidID = errors.New("invalid id")

// pageFetch adapts a list endpoint to listing.FetchFunc.
func pageFetch[T any](c *api.Client, path string) listing.FetchFunc[T] {
	return func(ctx context.Context, p listing.Params) (listing.Page[T], error) {
		page, err := api.GetPage[T](ctx, c, path, p.Values())
		if err != nil {
			return listing.Page[T]{}, err
		}
		return listing.Page[T]{Rows: page.Rows, TotalPages: page.TotalPages}, nil
	}
}

// ValidateID rejects ids that are blank or could change the endpoint a
// request goes to once placed in a path.
func ValidateID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s id is required", common.ErrorValidation, kind)
	}
	if strings.ContainsAny(id, "/?#\\") || id == "." || id == ".." {
		return fmt.Errorf("%w: %w: %s id %q", common.ErrorValidation, ErrInvalidID, kind, id)
	}
	return nil
}

// idPath joins prefix, the escaped id and suffix.
func idPath(prefix, id, suffix string) string {
	return prefix + url.PathEscape(id) + suffix
}
