// Package report implements the line-oriented report format the dir-stats
// commands exchange: bracketed group headers followed by key/value pairs,
// with comment lines for headers and subtotals.
package report

import (
	"slices"
	"strconv"
	"strings"
)

// Entry is a single key/value line of a group. Value is kept as text so a
// consumer decides how to treat sizes that do not parse.
type Entry struct {
	Key   string
	Value string
}

// NewEntry returns an entry with an integer value.
func NewEntry(key string, size int64) Entry {
	return Entry{Key: key, Value: strconv.FormatInt(size, 10)}
}

// Size parses the entry value as a byte count.
func (e Entry) Size() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(e.Value), 10, 64)
}

// Group is an ordered set of entries with unique keys.
type Group struct {
	Key     string
	entries []Entry
	index   map[string]int
}

func newGroup(key string) *Group {
	return &Group{Key: key, index: make(map[string]int)}
}

// Set adds an entry, or replaces the value of an existing entry in place.
func (g *Group) Set(entry Entry) {
	if i, ok := g.index[entry.Key]; ok {
		g.entries[i].Value = entry.Value
		return
	}
	g.index[entry.Key] = len(g.entries)
	g.entries = append(g.entries, entry)
}

// Entries returns the entries in their current order.
func (g *Group) Entries() []Entry {
	return g.entries
}

// Len returns the number of entries.
func (g *Group) Len() int {
	return len(g.entries)
}

// Totals returns the entry count and summed size. Entries whose value does
// not parse count toward files and add nothing to size.
func (g *Group) Totals() (files int, size int64) {
	for _, e := range g.entries {
		files++
		if v, err := e.Size(); err == nil {
			size += v
		}
	}
	return files, size
}

// Sort orders entries by key.
func (g *Group) Sort() {
	slices.SortFunc(g.entries, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	for i, e := range g.entries {
		g.index[e.Key] = i
	}
}

// Report is an ordered set of groups with unique keys.
type Report struct {
	groups []*Group
	index  map[string]*Group
}

// New returns an empty report.
func New() *Report {
	return &Report{index: make(map[string]*Group)}
}

// Group returns the group for key, creating it at the end if needed.
func (r *Report) Group(key string) *Group {
	if g, ok := r.index[key]; ok {
		return g
	}
	g := newGroup(key)
	r.index[key] = g
	r.groups = append(r.groups, g)
	return g
}

// Lookup returns an existing group.
func (r *Report) Lookup(key string) (*Group, bool) {
	g, ok := r.index[key]
	return g, ok
}

// Groups returns the groups in their current order.
func (r *Report) Groups() []*Group {
	return r.groups
}

// Totals sums Group.Totals over every group.
func (r *Report) Totals() (files int, size int64) {
	for _, g := range r.groups {
		f, s := g.Totals()
		files += f
		size += s
	}
	return files, size
}

// Sort orders groups by key and the entries of every group by key.
func (r *Report) Sort() {
	slices.SortFunc(r.groups, func(a, b *Group) int {
		return strings.Compare(a.Key, b.Key)
	})
	for _, g := range r.groups {
		g.Sort()
	}
}
