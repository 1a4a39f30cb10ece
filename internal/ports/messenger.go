package ports

import (
	"context"
	"errors"

	"github.com/bnema/techrelay/internal/domain"
)

// ErrTransient marks transport warnings that carry no business meaning.
// Callers drop them instead of logging.
var ErrTransient = errors.New("transient transport warning")

// ErrNameUnavailable is returned by a ContactDirectory that has no display
// name for an author.
var ErrNameUnavailable = errors.New("display name unavailable")

type SendOptions struct {
	SuppressReadReceipt bool
}

type Messenger interface {
	// Send posts content into a conversation and returns the id the network
	// assigned to the new message.
	Send(ctx context.Context, conversation domain.ConversationID, content domain.OutgoingContent, opts SendOptions) (domain.MessageID, error)
	// Reply posts text quoting an existing message.
	Reply(ctx context.Context, conversation domain.ConversationID, quoted domain.MessageID, text string) error
	DownloadAttachment(ctx context.Context, msg domain.InboundMessage) (domain.Attachment, error)
}

type ContactDirectory interface {
	DisplayName(ctx context.Context, author domain.AuthorID) (string, error)
}
