// Package fixture holds the mailbox contents every session starts with.
package fixture

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/store"
)

// Default returns a fresh copy of the seeded messages, labels and the
// conversation thread shown under each message.
func Default() store.Fixtures {
	msgs := messages()
	replies := make(map[string][]domain.Reply, len(msgs))
	for _, m := range msgs {
		replies[m.ID] = thread(m.ID)
	}
	return store.Fixtures{
		Messages: msgs,
		Labels:   labels(),
		Replies:  replies,
	}
}

// Load seeds s with Default.
func Load(ctx context.Context, s store.Store) error {
	if err := s.Seed(ctx, Default()); err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}
	return nil
}

func messages() []domain.Message {
	return []domain.Message{
		{
			ID:      "1",
			Sender:  "AI Mail sender",
			Subject: "Networking and other information from March forth in Business Monthly",
			Preview: "Hey! How are you doing? How are you doing? A cluster come by default a general for discussion...",
			Content: "<p>Hey! How are you doing? How are you doing? A cluster come by default a general for " +
				"discussion, you can add more rooms if needed...</p>",
			Timestamp: "11:30am",
			Folder:    domain.FolderInbox,
			Origin:    domain.Received{SenderEmail: "ai@mailsender.com"},
		},
		{
			ID:      "2",
			Sender:  "Sender",
			Subject: "Invitation to London Tech...",
			Preview: "Hey! I am inviting to to the plan technology partner for that trivia meeting...",
			Content: "<p>Hey! I am inviting to to the plan technology partner for that trivia meeting and the " +
				"events at the london teach with and exclusive...</p>",
			Timestamp: "9:30am",
			IsRead:    true,
			Folder:    domain.FolderInbox,
			Origin:    domain.Received{SenderEmail: "sender@example.com"},
		},
		{
			ID:      "3",
			Sender:  "John Doe",
			Subject: "Meeting Request",
			Preview: "Would you like to schedule a meeting for next week?",
			Content: "<p>Hi there, I hope this email finds you well. I wanted to reach out to schedule a " +
				"meeting...</p>",
			Timestamp: "Yesterday",
			IsStarred: true,
			Folder:    domain.FolderDesired,
			Origin:    domain.Received{SenderEmail: "john@example.com"},
		},
		{
			ID:        "4",
			Sender:    "Sarah Wilson",
			Subject:   "Project Update",
			Preview:   "The latest updates on our current project status...",
			Content:   "<p>Hi team, here are the latest updates on our project...</p>",
			Timestamp: "2 days ago",
			IsRead:    true,
			Folder:    domain.FolderSent,
			Origin:    domain.Received{SenderEmail: "sarah@company.com"},
		},
		{
			ID:        "5",
			Sender:    "Draft Email",
			Subject:   "Unsent Message",
			Preview:   "This is a draft email that hasn't been sent yet...",
			Content:   "<p>This is the content of a draft email...</p>",
			Timestamp: "3 days ago",
			Folder:    domain.FolderDrafts,
			Origin:    domain.Received{SenderEmail: "draft@local.com"},
		},
		{
			ID:        "6",
			Sender:    "Spam Sender",
			Subject:   "You've won a million dollars!",
			Preview:   "Congratulations! You've won our lottery...",
			Content:   "<p>This is obviously spam content...</p>",
			Timestamp: "1 week ago",
			Folder:    domain.FolderSpam,
			Origin:    domain.Received{SenderEmail: "spam@spam.com"},
		},
	}
}

// Label IDs share the store-wide ID space with messages, hence the prefix.
func labels() []domain.Label {
	return []domain.Label{
		{ID: "label-1", Name: "Clients", Color: "red"},
		{ID: "label-2", Name: "Personals", Color: "blue"},
		{ID: "label-3", Name: "Tech Team", Color: "yellow"},
	}
}

func thread(messageID string) []domain.Reply {
	return []domain.Reply{
		{
			ID:        fmt.Sprintf("thread-%s-1", messageID),
			Sender:    "John Doe",
			Content:   "Thanks for the update! This looks great.",
			Timestamp: "2 minutes ago",
		},
		{
			ID:        fmt.Sprintf("thread-%s-2", messageID),
			Sender:    "Sarah Wilson",
			Content:   "I agree with John. Let's proceed with this approach.",
			Timestamp: "5 minutes ago",
		},
	}
}
