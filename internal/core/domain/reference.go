package domain

import "fmt"

// Reference is a tag-encoded pointer from one record to another, either by
// exact record ID or by coordinate. Coordinate references address the
// latest record matching the coordinate and must be re-resolved against
// current source state; ID references are immutable.
type Reference interface {
	// Filter returns the filter that resolves this reference against a source.
	Filter() Filter

	// Key returns a stable string form of the reference, used for
	// visited-set membership and cache keys.
	Key() string
}

// IDReference points at one fixed record by its content-derived ID.
type IDReference struct {
	// ID is the referenced record's ID.
	ID string

	// Hint is an optional source address where the record may be found.
	Hint string
}

// Filter returns a filter matching exactly the referenced record.
func (r IDReference) Filter() Filter {
	return Filter{IDs: []string{r.ID}, Limit: 1}
}

// Key returns the record ID.
func (r IDReference) Key() string { return r.ID }

// CoordinateReference points at the latest record matching a coordinate.
type CoordinateReference struct {
	// Coordinate is the (kind, author, identifier) address.
	Coordinate Coordinate

	// Hint is an optional source address where the record may be found.
	Hint string
}

// Filter returns a filter matching records at the coordinate. The fan-out
// merge keeps only the latest, so a successful resolution is unambiguous.
func (r CoordinateReference) Filter() Filter {
	return Filter{
		Kinds:       []int{r.Coordinate.Kind},
		Authors:     []string{r.Coordinate.Author},
		Identifiers: []string{r.Coordinate.Identifier},
		Limit:       1,
	}
}

// Key returns the coordinate string.
func (r CoordinateReference) Key() string { return r.Coordinate.String() }

// ParseReferenceTag decodes a reference tag. "e" tags carry a record ID,
// "a" tags carry a coordinate. The optional third element is a source hint.
func ParseReferenceTag(tag []string) (Reference, error) {
	if len(tag) < 2 || tag[1] == "" {
		return nil, fmt.Errorf("%w: short tag", ErrInvalidReference)
	}
	hint := ""
	if len(tag) >= 3 {
		hint = tag[2]
	}
	switch tag[0] {
	case "e":
		return IDReference{ID: tag[1], Hint: hint}, nil
	case "a":
		coord, err := ParseCoordinate(tag[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		return CoordinateReference{Coordinate: coord, Hint: hint}, nil
	default:
		return nil, fmt.Errorf("%w: tag name %q", ErrInvalidReference, tag[0])
	}
}

// References returns the record's reference tags in tag order. Malformed
// tags are skipped. For index records this order is authoritative: it
// encodes chapter and section order.
func References(r *Record) []Reference {
	var refs []Reference
	for _, tag := range r.Tags {
		if len(tag) == 0 || (tag[0] != "e" && tag[0] != "a") {
			continue
		}
		ref, err := ParseReferenceTag(tag)
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}
