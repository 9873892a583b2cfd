package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record kinds understood by Folio. The numeric values follow the
// convention of the event stores the sources implement.
const (
	// KindComment is a threaded comment on a document or another comment.
	KindComment = 1111

	// KindArticle is a standalone long-form article.
	KindArticle = 30023

	// KindPublicationIndex is an index record whose reference tags define
	// the ordered structure of a multi-part publication.
	KindPublicationIndex = 30040

	// KindPublicationContent is a leaf content section of a publication.
	KindPublicationContent = 30041

	// KindHighlight is a quoted excerpt of another record.
	KindHighlight = 9802
)

// Record is an immutable, identity-addressed unit of content fetched from
// a source. The ID is derived from the record's content, so two records
// with the same ID are value-identical and may be deduplicated by ID alone.
type Record struct {
	// ID is the content-derived identifier, hex encoded.
	ID string

	// Author is the public key of the record's author, hex encoded.
	Author string

	// Kind discriminates the record's role (index, content, comment, ...).
	Kind int

	// CreatedAt is the author-asserted creation time.
	CreatedAt time.Time

	// Tags holds ordered key/value(+extra) pairs. Tag order is
	// significant: for index records it encodes chapter order.
	Tags [][]string

	// Content is the body payload.
	Content string
}

// TagValue returns the value of the first tag with the given name,
// or empty string if no such tag exists.
func (r *Record) TagValue(name string) string {
	for _, tag := range r.Tags {
		if len(tag) >= 2 && tag[0] == name {
			return tag[1]
		}
	}
	return ""
}

// TagValues returns the values of every tag with the given name, in tag order.
func (r *Record) TagValues(name string) []string {
	var values []string
	for _, tag := range r.Tags {
		if len(tag) >= 2 && tag[0] == name {
			values = append(values, tag[1])
		}
	}
	return values
}

// Identifier returns the record's "d" tag, the caller-chosen identifier
// that distinguishes replaceable records by the same author and kind.
func (r *Record) Identifier() string {
	return r.TagValue("d")
}

// Title returns the record's "title" tag, falling back to the identifier.
func (r *Record) Title() string {
	if t := r.TagValue("title"); t != "" {
		return t
	}
	return r.Identifier()
}

// IsReplaceable reports whether records of this kind are addressed by
// coordinate, with the latest record replacing earlier ones.
func (r *Record) IsReplaceable() bool {
	return r.Kind >= 30000 && r.Kind < 40000
}

// Coordinate returns the record's coordinate address. Only meaningful
// for replaceable kinds.
func (r *Record) Coordinate() Coordinate {
	return Coordinate{Kind: r.Kind, Author: r.Author, Identifier: r.Identifier()}
}

// Coordinate addresses the latest record of a given kind, author and
// identifier, as opposed to one fixed record ID. Coordinate addresses are
// late-bound: they must be re-resolved against current source state.
type Coordinate struct {
	// Kind is the record kind.
	Kind int

	// Author is the author's public key, hex encoded.
	Author string

	// Identifier is the record's "d" tag value. May be empty.
	Identifier string
}

// String encodes the coordinate in "kind:author:identifier" form, the
// same form used in reference tags and cache keys.
func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%s:%s", c.Kind, c.Author, c.Identifier)
}

// IsZero reports whether the coordinate is unset.
func (c Coordinate) IsZero() bool {
	return c.Kind == 0 && c.Author == "" && c.Identifier == ""
}

// ParseCoordinate parses a "kind:author:identifier" string.
// The identifier part may itself contain colons.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	kind, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: kind in %q", ErrInvalidCoordinate, s)
	}
	if parts[1] == "" {
		return Coordinate{}, fmt.Errorf("%w: missing author in %q", ErrInvalidCoordinate, s)
	}
	return Coordinate{Kind: kind, Author: parts[1], Identifier: parts[2]}, nil
}

// Provenance maps record IDs to the set of source addresses that
// returned the record. Used for observability and for re-querying a
// narrower source set later.
type Provenance map[string]map[string]bool

// Add records that a source returned a record.
func (p Provenance) Add(recordID, source string) {
	set, ok := p[recordID]
	if !ok {
		set = make(map[string]bool)
		p[recordID] = set
	}
	set[source] = true
}

// Sources returns the sorted source addresses that returned a record.
func (p Provenance) Sources(recordID string) []string {
	set, ok := p[recordID]
	if !ok {
		return nil
	}
	sources := make([]string, 0, len(set))
	for s := range set {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}

// Merge folds another provenance map into this one.
func (p Provenance) Merge(other Provenance) {
	for id, set := range other {
		for s := range set {
			p.Add(id, s)
		}
	}
}
