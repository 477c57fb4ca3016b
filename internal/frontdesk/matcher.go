package frontdesk

import "strings"

// Ticket identifies one issued search. Tickets increase monotonically.
type Ticket uint64

// Matcher keeps displayed results tied to the text that produced them.
//
// Two checks are combined: Eligible compares the text currently typed with the
// last executed query (case-insensitive, trimmed), and Accept drops responses
// whose ticket is not the latest one issued, so an abandoned search cannot
// overwrite a newer one even when both queries read the same.
type Matcher struct {
	Current  string `json:"current"`
	Executed string `json:"executed"`
	Latest   Ticket `json:"latest"`
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Type records the text currently in the search box. It never triggers a search.
func (m *Matcher) Type(text string) {
	m.Current = text
}

// Begin records query as the last executed search and issues its ticket.
func (m *Matcher) Begin(query string) Ticket {
	m.Executed = strings.TrimSpace(query)
	m.Latest++
	return m.Latest
}

// Accept reports whether a response for t is still the newest search.
func (m *Matcher) Accept(t Ticket) bool {
	return t != 0 && t == m.Latest
}

// Eligible reports whether results may be shown for the current text.
func (m *Matcher) Eligible() bool {
	current := normalize(m.Current)
	return current != "" && current == normalize(m.Executed)
}

// Reset forgets the executed query. Outstanding tickets are invalidated.
func (m *Matcher) Reset() {
	m.Executed = ""
	m.Latest++
}
