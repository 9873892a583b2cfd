package domain

import "time"

// Filter is a predicate set matched against records by a source.
// Empty slices and zero values do not constrain. A record matches a
// filter when it satisfies every populated constraint.
type Filter struct {
	// IDs constrains to records with one of these IDs.
	IDs []string

	// Kinds constrains to records of one of these kinds.
	Kinds []int

	// Authors constrains to records by one of these authors.
	Authors []string

	// Identifiers constrains to records whose "d" tag is one of these.
	Identifiers []string

	// Tags constrains on arbitrary tag values: every entry requires the
	// record to carry a tag with that name and one of the given values.
	Tags map[string][]string

	// Since constrains to records created at or after this time.
	Since time.Time

	// Limit caps the number of records a source should return.
	// Zero means no cap.
	Limit int
}

// Matches reports whether a record satisfies every populated constraint.
// Limit is a source-side cap and is not evaluated here.
func (f Filter) Matches(r *Record) bool {
	if len(f.IDs) > 0 && !containsString(f.IDs, r.ID) {
		return false
	}
	if len(f.Kinds) > 0 && !containsInt(f.Kinds, r.Kind) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, r.Author) {
		return false
	}
	if len(f.Identifiers) > 0 && !containsString(f.Identifiers, r.Identifier()) {
		return false
	}
	for name, values := range f.Tags {
		if !tagMatches(r, name, values) {
			return false
		}
	}
	if !f.Since.IsZero() && r.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

func tagMatches(r *Record, name string, values []string) bool {
	for _, have := range r.TagValues(name) {
		if containsString(values, have) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, n := range haystack {
		if n == needle {
			return true
		}
	}
	return false
}
