package cli

import (
	"github.com/lu-zhengda/mailbox/internal/app"
	"github.com/lu-zhengda/mailbox/internal/domain"
)

// ---------------------------------------------------------------------------
// Message JSON types (list, search)
// ---------------------------------------------------------------------------

type jsonMessage struct {
	ID          string   `json:"id"`
	Sender      string   `json:"sender"`
	SenderEmail string   `json:"sender_email,omitempty"`
	To          string   `json:"to,omitempty"`
	CC          string   `json:"cc,omitempty"`
	Subject     string   `json:"subject"`
	Preview     string   `json:"preview"`
	Timestamp   string   `json:"timestamp"`
	IsRead      bool     `json:"is_read"`
	IsStarred   bool     `json:"is_starred"`
	Labels      []string `json:"labels,omitempty"`
	Folder      string   `json:"folder"`
	Origin      string   `json:"origin,omitempty"`
}

func toJSONMessage(m *domain.Message) jsonMessage {
	out := jsonMessage{
		ID:        m.ID,
		Sender:    m.Sender,
		Subject:   m.Subject,
		Preview:   m.Preview,
		Timestamp: m.Timestamp,
		IsRead:    m.IsRead,
		IsStarred: m.IsStarred,
		Labels:    m.Labels,
		Folder:    string(m.Folder),
	}
	// Bcc stays out of every output.
	switch o := m.Origin.(type) {
	case domain.Received:
		out.Origin = "received"
		out.SenderEmail = o.SenderEmail
	case domain.Composed:
		out.Origin = "composed"
		out.To = o.To
		out.CC = o.CC
	}
	return out
}

func toJSONMessages(msgs []domain.Message) []jsonMessage {
	out := make([]jsonMessage, 0, len(msgs))
	for i := range msgs {
		out = append(out, toJSONMessage(&msgs[i]))
	}
	return out
}

// ---------------------------------------------------------------------------
// Message detail JSON type (read)
// ---------------------------------------------------------------------------

type jsonMessageDetail struct {
	jsonMessage
	Content string      `json:"content"`
	Replies []jsonReply `json:"replies"`
}

type jsonReply struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsStarred bool   `json:"is_starred"`
	InReplyTo string `json:"in_reply_to,omitempty"`
}

func toJSONMessageDetail(m *domain.Message, replies []domain.Reply) jsonMessageDetail {
	rs := make([]jsonReply, 0, len(replies))
	for _, r := range replies {
		rs = append(rs, jsonReply{
			ID:        r.ID,
			Sender:    r.Sender,
			Content:   r.Content,
			Timestamp: r.Timestamp,
			IsStarred: r.IsStarred,
			InReplyTo: r.InReplyTo,
		})
	}
	return jsonMessageDetail{
		jsonMessage: toJSONMessage(m),
		Content:     m.Content,
		Replies:     rs,
	}
}

// ---------------------------------------------------------------------------
// Folder JSON type (labels)
// ---------------------------------------------------------------------------

type jsonFolder struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Color  string `json:"color,omitempty"`
	Unread int    `json:"unread"`
}

func toJSONFolders(folders []app.FolderInfo) []jsonFolder {
	out := make([]jsonFolder, 0, len(folders))
	for _, f := range folders {
		kind := "folder"
		if f.Label {
			kind = "label"
		}
		out = append(out, jsonFolder{
			ID:     string(f.Folder),
			Name:   f.Name,
			Kind:   kind,
			Color:  f.Color,
			Unread: f.Unread,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Action JSON type (compose)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK        bool   `json:"ok"`
	Action    string `json:"action"`
	MessageID string `json:"message_id,omitempty"`
	Folder    string `json:"folder,omitempty"`
}
