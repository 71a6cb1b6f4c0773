package history

import "github.com/sahilm/fuzzy"

type entrySource []Entry

func (s entrySource) String(i int) string {
	d := s[i].Descriptor
	return d.Method + " " + d.Endpoint
}

func (s entrySource) Len() int { return len(s) }

// Search fuzzy-matches query against "METHOD endpoint", best match first.
// An empty query returns every entry, newest first.
func Search(entries []Entry, query string) []Entry {
	if query == "" {
		return Latest(entries, 0)
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}

// Latest returns up to n entries, newest first. n <= 0 means all.
func Latest(entries []Entry, n int) []Entry {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}
