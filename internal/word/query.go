package word

import (
	"regexp"
	"strings"
)

var tagTokenPattern = regexp.MustCompile(`#[\p{L}\p{N}_-]+`)

// Query is a parsed free-text filter: required tags (AND semantics) plus a
// case-insensitive substring term over the record's combined text fields.
type Query struct {
	Tags  []string
	Plain string
}

// ParseQuery splits `#tag` tokens out of raw input. Tags are lowercased;
// the remaining text becomes the plain term.
func ParseQuery(raw string) Query {
	tags := make([]string, 0)
	for _, token := range tagTokenPattern.FindAllString(raw, -1) {
		tags = append(tags, strings.ToLower(token[1:]))
	}
	plain := strings.TrimSpace(tagTokenPattern.ReplaceAllString(raw, " "))
	return Query{Tags: tags, Plain: plain}
}

// Match reports whether an active record satisfies the query. Trashed
// records never match. Every parsed tag must be present in the record's
// tags or autoTags; an empty plain term matches everything.
func (q Query) Match(record *Record) bool {
	if !record.Active() {
		return false
	}

	if len(q.Tags) > 0 {
		have := make(map[string]struct{}, len(record.Tags)+len(record.AutoTags))
		for _, tag := range record.Tags {
			have[strings.ToLower(tag)] = struct{}{}
		}
		for _, tag := range record.AutoTags {
			have[strings.ToLower(tag)] = struct{}{}
		}
		for _, tag := range q.Tags {
			if _, ok := have[tag]; !ok {
				return false
			}
		}
	}

	if q.Plain == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		record.Word,
		record.JaText,
		record.DefText,
		record.SynText,
		record.ExText,
		record.Note,
		strings.Join(record.Tags, " "),
	}, " "))
	return strings.Contains(haystack, strings.ToLower(q.Plain))
}

// Filter returns the records matching the query, preserving input order.
func (q Query) Filter(records []*Record) []*Record {
	matched := make([]*Record, 0, len(records))
	for _, record := range records {
		if q.Match(record) {
			matched = append(matched, record)
		}
	}
	return matched
}
