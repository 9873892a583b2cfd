package httpsource

import (
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// queryRequest is the JSON body of a query call.
type queryRequest struct {
	Filters []wireFilter `json:"filters"`
}

// wireFilter is the wire form of a query filter. Timestamps travel as
// Unix seconds; identifier filtering travels as a "d" tag filter.
type wireFilter struct {
	IDs     []string            `json:"ids,omitempty"`
	Kinds   []int               `json:"kinds,omitempty"`
	Authors []string            `json:"authors,omitempty"`
	Tags    map[string][]string `json:"tags,omitempty"`
	Since   int64               `json:"since,omitempty"`
	Limit   int                 `json:"limit,omitempty"`
}

// wireRecord is the wire form of a record.
type wireRecord struct {
	ID        string     `json:"id"`
	Author    string     `json:"author"`
	Kind      int        `json:"kind"`
	CreatedAt int64      `json:"created_at"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
}

func filtersToWire(filters []domain.Filter) []wireFilter {
	out := make([]wireFilter, 0, len(filters))
	for _, f := range filters {
		w := wireFilter{
			IDs:     f.IDs,
			Kinds:   f.Kinds,
			Authors: f.Authors,
			Limit:   f.Limit,
		}
		if !f.Since.IsZero() {
			w.Since = f.Since.Unix()
		}
		if len(f.Tags) > 0 || len(f.Identifiers) > 0 {
			w.Tags = make(map[string][]string, len(f.Tags)+1)
			for name, values := range f.Tags {
				w.Tags[name] = values
			}
			if len(f.Identifiers) > 0 {
				w.Tags["d"] = append(w.Tags["d"], f.Identifiers...)
			}
		}
		out = append(out, w)
	}
	return out
}

func (w wireRecord) toDomain() domain.Record {
	return domain.Record{
		ID:        w.ID,
		Author:    w.Author,
		Kind:      w.Kind,
		CreatedAt: time.Unix(w.CreatedAt, 0).UTC(),
		Tags:      w.Tags,
		Content:   w.Content,
	}
}
