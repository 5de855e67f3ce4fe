package domain

// Folder classifies a message. Besides the system folders below, the ID of
// a user label may be used as a pseudo-folder. Values are not validated.
type Folder string

const (
	FolderInbox   Folder = "inbox"
	FolderDesired Folder = "desired"
	FolderSent    Folder = "sent"
	FolderDrafts  Folder = "drafts"
	FolderSpam    Folder = "spam"
)

// SystemFolders lists the built-in folders in display order.
var SystemFolders = []Folder{
	FolderInbox,
	FolderDesired,
	FolderSent,
	FolderDrafts,
	FolderSpam,
}

var folderNames = map[Folder]string{
	FolderInbox:   "Inbox",
	FolderDesired: "Desired",
	FolderSent:    "Sent",
	FolderDrafts:  "Drafts",
	FolderSpam:    "Spam",
}

func (f Folder) IsSystem() bool {
	_, ok := folderNames[f]
	return ok
}

// DisplayName returns the human-friendly name of a system folder, or the
// raw tag for anything else.
func (f Folder) DisplayName() string {
	if name, ok := folderNames[f]; ok {
		return name
	}
	return string(f)
}

func (f Folder) String() string {
	return string(f)
}
