package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/logging"
	"github.com/bnema/techrelay/internal/metrics"
	"github.com/bnema/techrelay/internal/ports"
	"go.uber.org/zap"
)

// Router forwards validated requests from source conversations and resolves
// tracked requests from follow-ups everywhere else.
type Router struct {
	routes    RoutingTable
	store     *TrackingStore
	resolver  ReferenceResolver
	messenger ports.Messenger
	contacts  ports.ContactDirectory
	clock     ports.Clock
	log       *zap.SugaredLogger
}

func NewRouter(
	routes RoutingTable,
	store *TrackingStore,
	messenger ports.Messenger,
	contacts ports.ContactDirectory,
	clock ports.Clock,
	log *zap.SugaredLogger,
) *Router {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Router{
		routes:    routes,
		store:     store,
		resolver:  NewReferenceResolver(store),
		messenger: messenger,
		contacts:  contacts,
		clock:     clock,
		log:       logging.OrNop(log),
	}
}

// HandleMessage processes one inbound message. Messages sent by the relay
// itself are ignored.
func (r *Router) HandleMessage(ctx context.Context, msg domain.InboundMessage) error {
	if msg.FromSelf {
		return nil
	}
	if destination, ok := r.routes.Destination(msg.Conversation); ok {
		return r.route(ctx, msg, destination)
	}
	return r.resolveFollowUp(ctx, msg)
}

// HandleReaction resolves the tracked request a reaction was placed on.
func (r *Router) HandleReaction(ctx context.Context, reaction domain.Reaction) error {
	if reaction.MessageID.IsZero() {
		return nil
	}
	return r.markResolved(ctx, reaction.MessageID, ViaReaction)
}

func (r *Router) route(ctx context.Context, msg domain.InboundMessage, destination domain.ConversationID) error {
	source := msg.Conversation
	original := msg.EffectiveText()
	normalized := domain.NormalizeText(original)

	kind, ok := domain.Classify(normalized, msg.HasAttachment)
	if !ok {
		closest, missing := domain.ClosestTemplate(normalized, msg.HasAttachment)
		r.log.Infow("Request rejected", "source", source, "message", msg.ID,
			"closest", closest.Kind, "missing", missing)
		metrics.RequestsRejected.WithLabelValues(string(source)).Inc()
		if err := r.messenger.Reply(ctx, source, msg.ID, RejectionNotice); err != nil && !logging.IsTransient(err) {
			return fmt.Errorf("reply rejection to %s: %w", source, err)
		}
		return nil
	}

	author := msg.AuthorOrConversation()
	name := r.displayName(ctx, author)
	ref, _ := domain.ExtractAccountRef(normalized)

	content := domain.OutgoingContent{Text: ForwardText(original)}
	if msg.HasAttachment {
		attachment, err := r.messenger.DownloadAttachment(ctx, msg)
		if err != nil {
			metrics.ForwardFailures.WithLabelValues("download").Inc()
			return fmt.Errorf("download attachment of %s: %w", msg.ID, err)
		}
		content.Attachment = &attachment
	}

	forwardedID, err := r.messenger.Send(ctx, destination, content, ports.SendOptions{SuppressReadReceipt: true})
	if err != nil && !(logging.IsTransient(err) && !forwardedID.IsZero()) {
		metrics.ForwardFailures.WithLabelValues("forward").Inc()
		return fmt.Errorf("forward %s to %s: %w", msg.ID, destination, err)
	}
	if forwardedID.IsZero() {
		metrics.ForwardFailures.WithLabelValues("forward").Inc()
		return fmt.Errorf("forward %s to %s: no message id returned", msg.ID, destination)
	}

	record := domain.TrackingRecord{
		ID:                      forwardedID,
		SourceConversation:      source,
		DestinationConversation: destination,
		AuthorID:                author,
		AuthorDisplayName:       name,
		AccountRef:              ref,
		CreatedAt:               r.clock.Now(),
	}
	var errs []error
	if err := r.store.Put(ctx, record); err != nil {
		if !errors.Is(err, ErrNotPersisted) {
			return fmt.Errorf("track forwarded request %s: %w", forwardedID, err)
		}
		errs = append(errs, fmt.Errorf("track forwarded request %s: %w", forwardedID, err))
	}
	metrics.RequestsForwarded.WithLabelValues(string(source)).Inc()
	r.log.Infow("Request forwarded", "source", source, "destination", destination,
		"template", kind, "forwarded", forwardedID, "account", ref, "author", name)

	confirmation := domain.OutgoingContent{Text: ConfirmationNotice(name)}
	if _, err := r.messenger.Send(ctx, source, confirmation, ports.SendOptions{SuppressReadReceipt: true}); err != nil && !logging.IsTransient(err) {
		metrics.ForwardFailures.WithLabelValues("confirm").Inc()
		errs = append(errs, fmt.Errorf("confirm %s to %s: %w", msg.ID, source, err))
	}
	return errors.Join(errs...)
}

func (r *Router) displayName(ctx context.Context, author domain.AuthorID) string {
	name, err := r.contacts.DisplayName(ctx, author)
	if err != nil {
		if !errors.Is(err, ports.ErrNameUnavailable) {
			r.log.Debugw("Contact lookup failed", "author", author, "error", err)
		}
		return DefaultDisplayName
	}
	if name = strings.TrimSpace(name); name == "" {
		return DefaultDisplayName
	}
	return name
}

func (r *Router) resolveFollowUp(ctx context.Context, msg domain.InboundMessage) error {
	match, err := r.resolver.Resolve(ctx, msg.QuotedID, msg.EffectiveText())
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve follow-up %s: %w", msg.ID, err)
	}
	if match.Record.Resolved {
		return nil
	}
	return r.markResolved(ctx, match.Record.ID, match.Via)
}

func (r *Router) markResolved(ctx context.Context, id domain.MessageID, via ResolvedVia) error {
	changed, err := r.store.Resolve(ctx, id, r.clock.Now())
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil
	}
	if changed {
		metrics.RequestsResolved.WithLabelValues(string(via)).Inc()
		r.log.Infow("Request resolved", "forwarded", id, "via", via)
	}
	if err != nil {
		return fmt.Errorf("resolve %s: %w", id, err)
	}
	return nil
}
