package toml

// trackingFileSchema is the on-disk document. It holds no version header;
// the whole document is rewritten on every save.
type trackingFileSchema struct {
	ByMessage map[string]recordSchema `toml:"by_message"`
	ByAccount map[string]string       `toml:"by_account"`
}

type recordSchema struct {
	SourceConversation      string `toml:"source_conversation"`
	DestinationConversation string `toml:"destination_conversation"`
	AuthorID                string `toml:"author_id"`
	AuthorDisplayName       string `toml:"author_display_name"`
	AccountRef              string `toml:"account_ref,omitempty"`
	CreatedAt               string `toml:"created_at"`
	ReminderCount           int    `toml:"reminder_count"`
	Resolved                bool   `toml:"resolved"`
	ResolvedAt              string `toml:"resolved_at,omitempty"`
}
