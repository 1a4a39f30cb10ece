package application

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tomlrepo "github.com/bnema/techrelay/internal/adapters/repo/toml"
	"github.com/bnema/techrelay/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	sourceGroup = domain.ConversationID("120363401821218041@g.us")
	destGroup   = domain.ConversationID("120363342030232133@g.us")
	otherGroup  = domain.ConversationID("120363000000000001@g.us")
)

var baseTime = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStubClock(now time.Time) *stubClock {
	return &stubClock{now: now}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFileRepository(t *testing.T) *tomlrepo.TrackingRepository {
	t.Helper()

	config := viper.New()
	config.Set(tomlrepo.StorePathKey, filepath.Join(t.TempDir(), "tracking.toml"))
	repo, err := tomlrepo.NewTrackingRepository(config)
	require.NoError(t, err)
	return repo
}

func newFileStore(t *testing.T) (*TrackingStore, *tomlrepo.TrackingRepository) {
	t.Helper()

	repo := newFileRepository(t)
	store := OpenTrackingStore(context.Background(), repo, nil)
	t.Cleanup(store.Close)
	return store, repo
}

func trackedRecord(id domain.MessageID, account domain.AccountRef, created time.Time) domain.TrackingRecord {
	return domain.TrackingRecord{
		ID:                      id,
		SourceConversation:      sourceGroup,
		DestinationConversation: destGroup,
		AuthorID:                "573001234567@c.us",
		AuthorDisplayName:       "Ana",
		AccountRef:              account,
		CreatedAt:               created,
	}
}

func mockAnyContext() interface{} {
	return mock.Anything
}
