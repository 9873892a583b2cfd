package domain

import "strings"

// Source identifies one of several independent, unreliable endpoints
// holding copies of records. Any source may be slow, offline or
// incomplete; Folio treats the set as best-effort.
type Source struct {
	// Address is the endpoint address (e.g. "https://relay.example.org").
	Address string

	// Name is an optional human-readable label.
	Name string
}

// DisplayName returns the label if set, otherwise a shortened address.
func (s *Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	addr := strings.TrimPrefix(s.Address, "https://")
	return strings.TrimPrefix(addr, "http://")
}

// SourcesFromAddresses wraps bare addresses into Sources.
func SourcesFromAddresses(addresses []string) []Source {
	sources := make([]Source, 0, len(addresses))
	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		sources = append(sources, Source{Address: addr})
	}
	return sources
}
