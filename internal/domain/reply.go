package domain

import "strings"

// Reply is a message in the conversation thread shown under an email.
type Reply struct {
	ID        string
	Sender    string
	Content   string
	Timestamp string
	IsStarred bool
	// InReplyTo names the sender being answered, if the reply targets a
	// specific thread message.
	InReplyTo string
}

type ReplyDraft struct {
	Sender    string
	Content   string
	InReplyTo string
}

// Validate rejects a reply with no content.
func (d ReplyDraft) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyReply
	}
	return nil
}

func (d ReplyDraft) Materialize(id string) Reply {
	return Reply{
		ID:        id,
		Sender:    d.Sender,
		Content:   d.Content,
		Timestamp: TimestampJustNow,
		InReplyTo: d.InReplyTo,
	}
}
