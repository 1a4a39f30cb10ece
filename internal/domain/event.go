package domain

// InboundMessage is a message observed on the messaging network.
type InboundMessage struct {
	ID           MessageID
	Conversation ConversationID
	// Author is empty for direct conversations, where the conversation id
	// identifies the sender.
	Author AuthorID
	Body   string
	// Caption is the text attached to a media message. Body is ignored
	// when HasAttachment is set.
	Caption       string
	HasAttachment bool
	QuotedID      MessageID
	FromSelf      bool
}

// AuthorOrConversation returns the author id, falling back to the
// conversation id when the event carries no explicit author.
func (m InboundMessage) AuthorOrConversation() AuthorID {
	if m.Author != "" {
		return m.Author
	}
	return AuthorID(m.Conversation)
}

// EffectiveText is the text a request is judged on: the caption for
// attachments, the body otherwise.
func (m InboundMessage) EffectiveText() string {
	if m.HasAttachment {
		return m.Caption
	}
	return m.Body
}

// Reaction is an emoji reaction placed on a message.
type Reaction struct {
	MessageID MessageID
	Emoji     string
}

type Attachment struct {
	MimeType string
	Filename string
	Data     []byte
}

// OutgoingContent is either plain text or an attachment captioned with Text.
type OutgoingContent struct {
	Text       string
	Attachment *Attachment
}
