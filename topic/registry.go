// Package topic implements the client-side topic registry: a small,
// append-only table mapping topic names to gateway-assigned numeric IDs,
// with last-character wildcard matching for subscriptions.
package topic

import (
	"strings"

	"github.com/golang-io/mqttsn/packet"
)

// Callback is invoked with an inbound PUBLISH body when a topic's ID
// matches. A wildcard subscription's Callback is copied onto each concrete
// topic adopted for a matching REGISTER-ed name.
type Callback func(data []byte) int32

// Topic is one entry in the registry. ID == 0 means unregistered: the
// name has been created locally (CreateTopic) or subscribed to, but no
// REGACK/SUBACK has assigned it a numeric ID yet. A name whose last byte
// is '+' or '#' is a wildcard template: it is never assigned an ID, but
// its Callback seeds newly created concrete topics that match it.
type Topic struct {
	Name     packet.MqString
	ID       uint16
	Callback Callback
}

func (t *Topic) isWildcard() bool {
	if t.Name.Len() == 0 {
		return false
	}
	last := t.Name.Bytes()[t.Name.Len()-1]
	return last == '+' || last == '#'
}

// isMatch reports whether t (a stored pattern, possibly wildcarded)
// matches candidate, per spec §4.2:
//   - '+': the pattern minus its last byte must prefix candidate, and the
//     remainder of candidate must not contain '/'.
//   - '#': the pattern minus its last byte must prefix candidate; the
//     remainder is unrestricted.
//   - otherwise: exact equality.
func (t *Topic) isMatch(candidate string) bool {
	pattern := t.Name.String()
	if pattern == "" {
		return candidate == ""
	}
	last := pattern[len(pattern)-1]
	if last != '+' && last != '#' {
		return pattern == candidate
	}
	prefix := pattern[:len(pattern)-1]
	if !strings.HasPrefix(candidate, prefix) {
		return false
	}
	rest := candidate[len(prefix):]
	if last == '+' && strings.Contains(rest, "/") {
		return false
	}
	return true
}

// Table is the client's topic registry: an append-only ordered sequence
// of topics, grown in fixed increments. Name lookups are case-sensitive
// byte comparisons; ID lookups are linear scans — both fine at the small
// sizes (<32 entries) this client targets.
type Table struct {
	topics   []Topic
	growBy   int
}

// DefaultGrowBy is the table's default reallocation increment (spec
// MAX_TOPICS_INITIAL).
const DefaultGrowBy = 5

// NewTable creates an empty registry. growBy <= 0 uses DefaultGrowBy.
func NewTable(growBy int) *Table {
	if growBy <= 0 {
		growBy = DefaultGrowBy
	}
	return &Table{topics: make([]Topic, 0, growBy), growBy: growBy}
}

// Add inserts name with ID 0 if no exact-name entry exists yet, and
// returns the (possibly pre-existing) entry. Idempotent.
func (t *Table) Add(name packet.MqString) *Topic {
	if existing := t.FindByName(name.String()); existing != nil {
		return existing
	}
	if len(t.topics) == cap(t.topics) {
		grown := make([]Topic, len(t.topics), cap(t.topics)+t.growBy)
		copy(grown, t.topics)
		t.topics = grown
	}
	t.topics = append(t.topics, Topic{Name: name.ToOwned()})
	return &t.topics[len(t.topics)-1]
}

// FindByName returns the entry whose name exactly equals name, or nil.
func (t *Table) FindByName(name string) *Topic {
	for i := range t.topics {
		if t.topics[i].Name.String() == name {
			return &t.topics[i]
		}
	}
	return nil
}

// FindByID returns the entry with the given non-zero ID, or nil.
func (t *Table) FindByID(id uint16) *Topic {
	if id == 0 {
		return nil
	}
	for i := range t.topics {
		if t.topics[i].ID == id {
			return &t.topics[i]
		}
	}
	return nil
}

// SetID assigns a gateway-allocated ID to the entry named name. No-op if
// the name isn't registered.
func (t *Table) SetID(name string, id uint16) {
	if e := t.FindByName(name); e != nil {
		e.ID = id
	}
}

// SetCallback attaches cb to the entry named name.
func (t *Table) SetCallback(name string, cb Callback) {
	if e := t.FindByName(name); e != nil {
		e.Callback = cb
	}
}

// ExecCallback dispatches data to the entry with the given ID, returning
// its callback's result, or 0 if no entry (or no callback) is found.
func (t *Table) ExecCallback(id uint16, data []byte) int32 {
	e := t.FindByID(id)
	if e == nil || e.Callback == nil {
		return 0
	}
	return e.Callback(data)
}

// Match returns a wildcard template entry matching candidate, or nil.
func (t *Table) Match(candidate string) *Topic {
	for i := range t.topics {
		if t.topics[i].isWildcard() && t.topics[i].isMatch(candidate) {
			return &t.topics[i]
		}
	}
	return nil
}

// AdoptWildcard is called when the gateway REGISTERs a name the client
// never locally created. If a wildcard subscription's pattern matches
// name, a new concrete, owned entry is created with id and the wildcard's
// callback, and returned. Returns nil if no wildcard matches.
func (t *Table) AdoptWildcard(name string, id uint16) *Topic {
	w := t.Match(name)
	if w == nil {
		return nil
	}
	e := t.Add(packet.OwnString(name))
	e.ID = id
	e.Callback = w.Callback
	return e
}

// Len reports the number of entries (wildcards included).
func (t *Table) Len() int { return len(t.topics) }
