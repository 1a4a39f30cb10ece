package application

import (
	"context"
	"errors"

	"github.com/bnema/techrelay/internal/domain"
)

// ResolvedVia names how a follow-up was matched to a tracked request.
type ResolvedVia string

const (
	ViaQuote    ResolvedVia = "quote"
	ViaAccount  ResolvedVia = "account"
	ViaReaction ResolvedVia = "reaction"
)

type Match struct {
	Record domain.TrackingRecord
	Via    ResolvedVia
}

// ReferenceResolver finds the tracked request a follow-up refers to. It
// never changes the store.
type ReferenceResolver struct {
	store *TrackingStore
}

func NewReferenceResolver(store *TrackingStore) ReferenceResolver {
	return ReferenceResolver{store: store}
}

// Resolve prefers the quoted message id, then the first 7 to 10 digit run
// in text looked up as an account reference. It returns
// domain.ErrRecordNotFound when neither matches.
func (r ReferenceResolver) Resolve(ctx context.Context, quoted domain.MessageID, text string) (Match, error) {
	if !quoted.IsZero() {
		record, err := r.store.Get(ctx, quoted)
		switch {
		case err == nil:
			return Match{Record: record, Via: ViaQuote}, nil
		case !errors.Is(err, domain.ErrRecordNotFound):
			return Match{}, err
		}
	}

	ref, ok := domain.ReferenceDigits(text)
	if !ok {
		return Match{}, domain.ErrRecordNotFound
	}
	record, err := r.store.GetByAccount(ctx, ref)
	if err != nil {
		return Match{}, err
	}
	return Match{Record: record, Via: ViaAccount}, nil
}
