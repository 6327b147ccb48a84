// By Navid M (c)
// Date: 2025
// License: GPL3
//
// The command table maps pattern triggers to optional replacement commands.

package commands

// MaxLength is the longest trigger or command name.
const MaxLength = 80

// Entry is one declared trigger. Command is empty for a bare trigger.
type Entry struct {
	Trigger string
	Command string
}

// Table is an ordered list of entries. Lookup returns the first entry
// declared for a trigger; later duplicates are shadowed.
type Table struct {
	entries []Entry
	index   map[string]int
}

func NewTable(entries ...Entry) *Table {
	t := &Table{index: make(map[string]int)}
	for _, e := range entries {
		t.Add(e)
	}
	return t
}

// Add appends an entry.
func (t *Table) Add(e Entry) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[e.Trigger]; !ok {
		t.index[e.Trigger] = len(t.entries)
	}
	t.entries = append(t.entries, e)
}

// Merge appends every entry of other, keeping its order.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		t.Add(e)
	}
}

func (t *Table) Lookup(trigger string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	i, ok := t.index[trigger]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the declared entries in order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return append([]Entry(nil), t.entries...)
}

// IsTriggerChar reports whether ch may appear in a trigger or command name.
func IsTriggerChar(ch int) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= '0' && ch <= '9') ||
		(ch >= 'A' && ch <= 'Z') ||
		ch == '_' || ch == '$' || ch == '.'
}
