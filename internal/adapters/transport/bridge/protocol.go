package bridge

import "github.com/bnema/techrelay/internal/domain"

// Event types emitted by the network side.
const (
	EventMessage  = "message"
	EventReaction = "reaction"
	EventWarning  = "warning"
)

// Command types sent to the network side.
const (
	CommandSend  = "send"
	CommandReply = "reply"
)

type event struct {
	Type string `json:"type"`

	// message
	ID            string      `json:"id,omitempty"`
	Conversation  string      `json:"conversation,omitempty"`
	Author        string      `json:"author,omitempty"`
	AuthorName    string      `json:"author_name,omitempty"`
	Body          string      `json:"body,omitempty"`
	Caption       string      `json:"caption,omitempty"`
	HasAttachment bool        `json:"has_attachment,omitempty"`
	Attachment    *attachment `json:"attachment,omitempty"`
	QuotedID      string      `json:"quoted_id,omitempty"`
	FromSelf      bool        `json:"from_self,omitempty"`

	// reaction and warning
	MessageID string `json:"message_id,omitempty"`
	Emoji     string `json:"emoji,omitempty"`
	Error     string `json:"error,omitempty"`
}

type attachment struct {
	MimeType string `json:"mime_type"`
	Filename string `json:"filename,omitempty"`
	Data     []byte `json:"data"`
}

type command struct {
	Type                string      `json:"type"`
	MessageID           string      `json:"message_id"`
	Conversation        string      `json:"conversation"`
	Text                string      `json:"text,omitempty"`
	QuotedID            string      `json:"quoted_id,omitempty"`
	Attachment          *attachment `json:"attachment,omitempty"`
	SuppressReadReceipt bool        `json:"suppress_read_receipt,omitempty"`
}

func (e event) inboundMessage() domain.InboundMessage {
	return domain.InboundMessage{
		ID:            domain.MessageID(e.ID),
		Conversation:  domain.ConversationID(e.Conversation),
		Author:        domain.AuthorID(e.Author),
		Body:          e.Body,
		Caption:       e.Caption,
		HasAttachment: e.HasAttachment || e.Attachment != nil,
		QuotedID:      domain.MessageID(e.QuotedID),
		FromSelf:      e.FromSelf,
	}
}

func (a *attachment) toDomain() domain.Attachment {
	return domain.Attachment{MimeType: a.MimeType, Filename: a.Filename, Data: a.Data}
}

func fromDomainAttachment(a *domain.Attachment) *attachment {
	if a == nil {
		return nil
	}
	return &attachment{MimeType: a.MimeType, Filename: a.Filename, Data: a.Data}
}
