// Package mime exports messages as RFC 5322 documents.
package mime

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/richtext"
)

// Addresses used in From when the real one is unknown.
const (
	selfFallbackAddress    = "you@mailbox.local"
	unknownFallbackAddress = "unknown@mailbox.local"
)

// Identity is the mailbox owner, used as the author of composed mail.
type Identity struct {
	Name  string
	Email string
}

// Write renders m as a multipart/alternative document with a text/plain
// and a text/html part. Bcc recipients are never written. Nothing reaches w
// unless the whole document renders.
func Write(w io.Writer, m *domain.Message, self Identity, date time.Time) error {
	var h mail.Header
	h.SetDate(date)
	h.SetSubject(m.Subject)
	h.SetMessageID(m.ID + "@mailbox.local")

	from := &mail.Address{Name: m.Sender, Address: m.SenderEmail()}
	if from.Address == "" {
		from.Address = unknownFallbackAddress
	}
	if c, ok := m.Composed(); ok {
		from = &mail.Address{Name: self.Name, Address: self.Email}
		if from.Address == "" {
			from.Address = selfFallbackAddress
		}
		setRecipients(&h, "To", c.To)
		setRecipients(&h, "Cc", c.CC)
	}
	h.SetAddressList("From", []*mail.Address{from})
	if len(m.Labels) > 0 {
		h.Set("Keywords", strings.Join(m.Labels, ", "))
	}
	h.Set("X-Mailbox-Folder", string(m.Folder))

	plain, err := richtext.PlainText(m.Content)
	if err != nil {
		return fmt.Errorf("failed to extract plain text: %w", err)
	}

	var buf bytes.Buffer
	iw, err := mail.CreateInlineWriter(&buf, h)
	if err != nil {
		return fmt.Errorf("failed to create message writer: %w", err)
	}
	if err := writePart(iw, "text/plain", plain); err != nil {
		return err
	}
	if err := writePart(iw, "text/html", m.Content); err != nil {
		return err
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func writePart(iw *mail.InlineWriter, contentType, body string) error {
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	pw, err := iw.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return fmt.Errorf("failed to write %s part: %w", contentType, err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close %s part: %w", contentType, err)
	}
	return nil
}

// setRecipients writes a parsed address list, falling back to the raw
// string when the user typed something that does not parse.
func setRecipients(h *mail.Header, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addrs, err := mail.ParseAddressList(value)
	if err != nil {
		h.Set(key, value)
		return
	}
	h.SetAddressList(key, addrs)
}
