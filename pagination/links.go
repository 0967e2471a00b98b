package pagination

import (
	"net/url"

	"github.com/pkg/errors"

	siren "github.com/ccbrown/siren-fu"
	"github.com/ccbrown/siren-fu/values"
)

// LinkConfig describes how page cursors are carried in collection URLs.
type LinkConfig struct {
	// Href is the URL of the current page. Any query parameters besides the cursor parameters are
	// carried over to the other pages.
	Href string

	// The query parameters for cursors. If empty, "after" and "before" are used.
	AfterParameter  string
	BeforeParameter string
}

func (cfg LinkConfig) afterParameter() string {
	if cfg.AfterParameter == "" {
		return "after"
	}
	return cfg.AfterParameter
}

func (cfg LinkConfig) beforeParameter() string {
	if cfg.BeforeParameter == "" {
		return "before"
	}
	return cfg.BeforeParameter
}

// Links returns the navigation links for the page: "self" always, "first" and "prev" when there is
// a previous page, and "next" when there is a next page.
func (info PageInfo[C]) Links(cfg LinkConfig) ([]siren.Link, error) {
	base, err := url.Parse(cfg.Href)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid collection url %q", cfg.Href)
	}

	links := []siren.Link{
		siren.NewLink(cfg.Href).WithRel(values.RelSelf),
	}

	if info.HasPreviousPage {
		links = append(links, siren.NewLink(cfg.pageHref(base, "", "")).WithRel(values.RelFirst))
		if info.StartCursor != nil {
			before, err := SerializeCursor(*info.StartCursor)
			if err != nil {
				return nil, err
			}
			links = append(links, siren.NewLink(cfg.pageHref(base, "", before)).WithRel(values.RelPrev))
		}
	}

	if info.HasNextPage && info.EndCursor != nil {
		after, err := SerializeCursor(*info.EndCursor)
		if err != nil {
			return nil, err
		}
		links = append(links, siren.NewLink(cfg.pageHref(base, after, "")).WithRel(values.RelNext))
	}

	return links, nil
}

func (cfg LinkConfig) pageHref(base *url.URL, after, before string) string {
	u := *base
	q := u.Query()
	q.Del(cfg.afterParameter())
	q.Del(cfg.beforeParameter())
	if after != "" {
		q.Set(cfg.afterParameter(), after)
	}
	if before != "" {
		q.Set(cfg.beforeParameter(), before)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
