package domain

import (
	"slices"
	"strings"
)

// TimestampJustNow is the display timestamp given to every record created
// during the session. It is never recomputed.
const TimestampJustNow = "Just now"

// Origin tells received mail apart from mail composed locally.
// It is implemented by Received and Composed only.
type Origin interface {
	isOrigin()
}

// Received is the origin of mail that arrived in the mailbox.
type Received struct {
	SenderEmail string
}

// Composed is the origin of mail written in the composer, either sent or
// saved as a draft. Recipients are kept as entered.
type Composed struct {
	To  string
	CC  string
	BCC string
}

func (Received) isOrigin() {}
func (Composed) isOrigin() {}

type Message struct {
	ID        string
	Sender    string
	Subject   string
	Preview   string
	Content   string
	Timestamp string
	IsRead    bool
	IsStarred bool
	Labels    []string
	Folder    Folder
	Origin    Origin
}

// Draft is a message that has not been added to a store yet.
type Draft struct {
	Sender    string
	Subject   string
	Preview   string
	Content   string
	IsRead    bool
	IsStarred bool
	Labels    []string
	Folder    Folder
	Origin    Origin
}

// Materialize turns the draft into a Message with the given id.
func (d Draft) Materialize(id string) Message {
	return Message{
		ID:        id,
		Sender:    d.Sender,
		Subject:   d.Subject,
		Preview:   d.Preview,
		Content:   d.Content,
		Timestamp: TimestampJustNow,
		IsRead:    d.IsRead,
		IsStarred: d.IsStarred,
		Labels:    slices.Clone(d.Labels),
		Folder:    d.Folder,
		Origin:    d.Origin,
	}
}

// Clone returns a copy that shares no mutable state with m.
func (m Message) Clone() Message {
	m.Labels = slices.Clone(m.Labels)
	return m
}

func (m *Message) HasLabel(label string) bool {
	for _, l := range m.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Composed reports the recipients of a locally composed message.
func (m *Message) Composed() (Composed, bool) {
	c, ok := m.Origin.(Composed)
	return c, ok
}

// SenderEmail returns the sender address of received mail, or "".
func (m *Message) SenderEmail() string {
	if r, ok := m.Origin.(Received); ok {
		return r.SenderEmail
	}
	return ""
}

// Matches reports whether query is a case-insensitive substring of the
// sender, subject, preview, content or any label. A blank query matches
// everything.
func (m *Message) Matches(query string) bool {
	q := NormalizeQuery(query)
	if q == "" {
		return true
	}
	fields := [...]string{m.Sender, m.Subject, m.Preview, m.Content}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, l := range m.Labels {
		if strings.Contains(strings.ToLower(l), q) {
			return true
		}
	}
	return false
}

// NormalizeQuery trims and lower-cases a search query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Filter returns the messages matching query, keeping their order.
func Filter(msgs []Message, query string) []Message {
	if NormalizeQuery(query) == "" {
		return msgs
	}
	out := make([]Message, 0, len(msgs))
	for i := range msgs {
		if msgs[i].Matches(query) {
			out = append(out, msgs[i])
		}
	}
	return out
}
