// Package bridge connects the relay to the messaging network through a
// companion process speaking JSON events and commands over a Link.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/logging"
	"github.com/bnema/techrelay/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrAttachmentUnavailable = errors.New("attachment not available")

// Handler receives decoded network events.
type Handler interface {
	HandleMessage(ctx context.Context, msg domain.InboundMessage) error
	HandleReaction(ctx context.Context, reaction domain.Reaction) error
}

var (
	_ ports.Messenger        = (*Bridge)(nil)
	_ ports.ContactDirectory = (*Bridge)(nil)
)

// Bridge implements the messaging and contact ports on top of a Link.
type Bridge struct {
	link  Link
	log   *zap.SugaredLogger
	newID func() string

	mu          sync.Mutex
	contacts    map[domain.AuthorID]string
	learned     map[domain.AuthorID]string
	attachments map[domain.MessageID]domain.Attachment
}

type Option func(*Bridge)

// WithContacts sets display names that take precedence over the names seen
// on inbound messages.
func WithContacts(contacts map[string]string) Option {
	return func(b *Bridge) {
		for author, name := range contacts {
			if name = strings.TrimSpace(name); name != "" {
				b.contacts[domain.AuthorID(author)] = name
			}
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}

func New(link Link, opts ...Option) *Bridge {
	b := &Bridge{
		link:        link,
		log:         logging.OrNop(nil),
		newID:       func() string { return uuid.NewString() },
		contacts:    map[domain.AuthorID]string{},
		learned:     map[domain.AuthorID]string{},
		attachments: map[domain.MessageID]domain.Attachment{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Run dispatches events to h one at a time until ctx is cancelled or the
// link is exhausted. Handler errors are logged and do not stop the loop.
func (b *Bridge) Run(ctx context.Context, h Handler) error {
	for {
		raw, err := b.link.ReadEvent(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, ErrLinkClosed):
				b.log.Info("Bridge link closed")
				return nil
			case ctx.Err() != nil:
				return nil
			default:
				return fmt.Errorf("read event: %w", err)
			}
		}
		b.dispatch(ctx, raw, h)
	}
}

func (b *Bridge) dispatch(ctx context.Context, raw []byte, h Handler) {
	var ev event
	if err := json.Unmarshal(raw, &ev); err != nil {
		b.log.Warnw("Discarding malformed event", "error", err)
		return
	}

	var err error
	switch ev.Type {
	case EventMessage:
		if ev.ID == "" || ev.Conversation == "" {
			b.log.Warnw("Discarding message event without id or conversation", "id", ev.ID)
			return
		}
		msg := ev.inboundMessage()
		b.remember(ev)
		err = h.HandleMessage(ctx, msg)
		b.forget(msg.ID)
	case EventReaction:
		err = h.HandleReaction(ctx, domain.Reaction{MessageID: domain.MessageID(ev.MessageID), Emoji: ev.Emoji})
	case EventWarning:
		err = errors.New(ev.Error)
	default:
		b.log.Debugw("Ignoring event", "type", ev.Type)
		return
	}

	if err != nil && !logging.IsTransient(err) {
		b.log.Errorw("Event handling failed", "type", ev.Type, "id", firstNonEmpty(ev.ID, ev.MessageID), "error", err)
	}
}

func (b *Bridge) remember(ev event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name := strings.TrimSpace(ev.AuthorName); name != "" {
		author := domain.AuthorID(ev.Author)
		if author == "" {
			author = domain.AuthorID(ev.Conversation)
		}
		b.learned[author] = name
	}
	if ev.Attachment != nil {
		b.attachments[domain.MessageID(ev.ID)] = ev.Attachment.toDomain()
	}
}

func (b *Bridge) forget(id domain.MessageID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.attachments, id)
}

func (b *Bridge) Send(ctx context.Context, conversation domain.ConversationID, content domain.OutgoingContent, opts ports.SendOptions) (domain.MessageID, error) {
	cmd := command{
		Type:                CommandSend,
		MessageID:           b.newID(),
		Conversation:        string(conversation),
		Text:                content.Text,
		Attachment:          fromDomainAttachment(content.Attachment),
		SuppressReadReceipt: opts.SuppressReadReceipt,
	}
	if err := b.write(ctx, cmd); err != nil {
		return "", err
	}
	return domain.MessageID(cmd.MessageID), nil
}

func (b *Bridge) Reply(ctx context.Context, conversation domain.ConversationID, quoted domain.MessageID, text string) error {
	return b.write(ctx, command{
		Type:                CommandReply,
		MessageID:           b.newID(),
		Conversation:        string(conversation),
		QuotedID:            string(quoted),
		Text:                text,
		SuppressReadReceipt: true,
	})
}

func (b *Bridge) write(ctx context.Context, cmd command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode %s command: %w", cmd.Type, err)
	}
	if err := b.link.WriteCommand(ctx, payload); err != nil {
		return fmt.Errorf("%s to %s: %w", cmd.Type, cmd.Conversation, err)
	}
	return nil
}

// DownloadAttachment returns the media carried by msg. It is only available
// while msg is being handled.
func (b *Bridge) DownloadAttachment(_ context.Context, msg domain.InboundMessage) (domain.Attachment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	attachment, ok := b.attachments[msg.ID]
	if !ok {
		return domain.Attachment{}, fmt.Errorf("%w: %s", ErrAttachmentUnavailable, msg.ID)
	}
	return attachment, nil
}

func (b *Bridge) DisplayName(_ context.Context, author domain.AuthorID) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name, ok := b.contacts[author]; ok {
		return name, nil
	}
	if name, ok := b.learned[author]; ok {
		return name, nil
	}
	return "", ports.ErrNameUnavailable
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
