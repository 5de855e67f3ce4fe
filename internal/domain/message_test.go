package domain

import "testing"

func TestMessage_Matches(t *testing.T) {
	m := &Message{
		Sender:  "John Doe",
		Subject: "Meeting Request",
		Preview: "Would you like to schedule",
		Content: "<p>Hi there</p>",
		Labels:  []string{"Work"},
	}
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"sender lower", "john", true},
		{"sender upper", "JOHN", true},
		{"subject", "request", true},
		{"preview", "schedule", true},
		{"content markup", "<p>hi", true},
		{"label", "work", true},
		{"padded", "  meeting ", true},
		{"no match", "invoice", false},
		{"across fields is not joined", "doe meeting", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_KeepsOrder(t *testing.T) {
	msgs := []Message{
		{ID: "1", Subject: "alpha report"},
		{ID: "2", Subject: "beta"},
		{ID: "3", Subject: "Report gamma"},
	}
	got := Filter(msgs, "report")
	if len(got) != 2 {
		t.Fatalf("Filter() count = %d, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Filter() ids = [%s %s], want [1 3]", got[0].ID, got[1].ID)
	}
}

func TestDraft_Materialize(t *testing.T) {
	d := Draft{
		Sender:  "You",
		Subject: "Hi",
		Content: "hello",
		Folder:  FolderSent,
		Labels:  []string{"a"},
		Origin:  Composed{To: "bob@example.com"},
	}
	m := d.Materialize("id-1")
	if m.ID != "id-1" {
		t.Errorf("ID = %q, want %q", m.ID, "id-1")
	}
	if m.Timestamp != TimestampJustNow {
		t.Errorf("Timestamp = %q, want %q", m.Timestamp, TimestampJustNow)
	}
	if m.IsStarred || m.IsRead {
		t.Error("flags should default to false")
	}
	d.Labels[0] = "changed"
	if m.Labels[0] != "a" {
		t.Error("Materialize() shares the labels slice with the draft")
	}
	c, ok := m.Composed()
	if !ok || c.To != "bob@example.com" {
		t.Errorf("Composed() = %+v, %v", c, ok)
	}
	if m.SenderEmail() != "" {
		t.Errorf("SenderEmail() = %q, want empty for composed mail", m.SenderEmail())
	}
}

func TestMessage_HasLabel(t *testing.T) {
	m := &Message{Labels: []string{"Clients", "Tech Team"}}
	if !m.HasLabel("Clients") {
		t.Error("expected HasLabel(Clients) = true")
	}
	if m.HasLabel("Personals") {
		t.Error("expected HasLabel(Personals) = false")
	}
}

func TestFolder_DisplayName(t *testing.T) {
	if got := FolderDrafts.DisplayName(); got != "Drafts" {
		t.Errorf("DisplayName() = %q, want %q", got, "Drafts")
	}
	if got := Folder("lbl-1").DisplayName(); got != "lbl-1" {
		t.Errorf("DisplayName() = %q, want %q", got, "lbl-1")
	}
	if Folder("lbl-1").IsSystem() {
		t.Error("label pseudo-folder reported as system folder")
	}
}
