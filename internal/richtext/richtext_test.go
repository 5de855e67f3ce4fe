package richtext

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"paragraph", "hello", []string{"<p>hello</p>"}},
		{"bold", "**big** news", []string{"<strong>big</strong>"}},
		{"list", "- one\n- two", []string{"<ul>", "<li>one</li>"}},
		{"hard break", "line one\nline two", []string{"<br"}},
		{"autolink", "see https://example.com", []string{`href="https://example.com"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, w)
				}
			}
		})
	}

	if got := Render("  \n "); got != "" {
		t.Errorf("Render(blank) = %q, want empty", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"paragraphs", "<p>Hi there</p><p>Second</p>", "Hi there\nSecond"},
		{"inline", "<p>a <strong>bold</strong>   move</p>", "a bold move"},
		{"script dropped", "<script>alert(1)</script><div>ok</div>", "ok"},
		{"zero width", "<p>a\u200bb</p>", "ab"},
		{"break", "one<br>two", "one\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlainText(tt.input)
			if err != nil {
				t.Fatalf("PlainText() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short", "<p>Hello</p>", 10, "Hello"},
		{"joined lines", "<p>Hello</p><p>world</p>", 20, "Hello world"},
		{"cut", "<p>Hello wonderful world</p>", 5, "Hello..."},
		{"cut trims", "<p>Hello wonderful world</p>", 6, "Hello..."},
		{"runes", "<p>héllo wörld</p>", 4, "héll..."},
		{"no limit", "<p>Hello wonderful world</p>", 0, "Hello wonderful world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.input, tt.n); got != tt.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestRenderThenPlainText(t *testing.T) {
	html := Render("# Title\n\nSome *body* text.")
	got, err := PlainText(html)
	if err != nil {
		t.Fatalf("PlainText() error: %v", err)
	}
	if got != "Title\nSome body text." {
		t.Errorf("PlainText(Render()) = %q", got)
	}
}
