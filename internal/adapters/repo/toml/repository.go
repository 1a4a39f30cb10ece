package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	StorePathKey    = "store.path"
	storeFileMode   = 0o600
	storeDirMode    = 0o700
	storeConfigDir  = ".techrelay"
	storeFileName   = "tracking.toml"
	tempFilePattern = ".tracking-*.toml.tmp"
)

// ErrCorruptDocument is returned by Load when the document exists but
// cannot be decoded.
var ErrCorruptDocument = errors.New("corrupt tracking document")

type TrackingRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.TrackingRepository = (*TrackingRepository)(nil)

func NewTrackingRepository(cfg *viper.Viper) (*TrackingRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(StorePathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, storeConfigDir, storeFileName)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &TrackingRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *TrackingRepository) Path() string {
	return r.path
}

// Load reads the whole document. A missing document is an empty snapshot.
func (r *TrackingRepository) Load(ctx context.Context) (domain.TrackingSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrackingSnapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewTrackingSnapshot(), nil
		}
		return domain.TrackingSnapshot{}, fmt.Errorf("read tracking file: %w", err)
	}

	var file trackingFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.TrackingSnapshot{}, fmt.Errorf("decode tracking file: %w: %w", ErrCorruptDocument, err)
	}

	return fromSchema(file), nil
}

// Save replaces the whole document atomically.
func (r *TrackingRepository) Save(ctx context.Context, snapshot domain.TrackingSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return writeTOMLFile(r.path, toSchema(snapshot))
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve tracking path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(snapshot domain.TrackingSnapshot) trackingFileSchema {
	file := trackingFileSchema{
		ByMessage: make(map[string]recordSchema, len(snapshot.ByMessage)),
		ByAccount: make(map[string]string, len(snapshot.ByAccount)),
	}

	for id, record := range snapshot.ByMessage {
		file.ByMessage[string(id)] = recordSchema{
			SourceConversation:      string(record.SourceConversation),
			DestinationConversation: string(record.DestinationConversation),
			AuthorID:                string(record.AuthorID),
			AuthorDisplayName:       record.AuthorDisplayName,
			AccountRef:              string(record.AccountRef),
			CreatedAt:               formatTime(record.CreatedAt),
			ReminderCount:           record.ReminderCount,
			Resolved:                record.Resolved,
			ResolvedAt:              formatTime(record.ResolvedAt),
		}
	}
	for ref, id := range snapshot.ByAccount {
		file.ByAccount[string(ref)] = string(id)
	}

	return file
}

func fromSchema(file trackingFileSchema) domain.TrackingSnapshot {
	snapshot := domain.NewTrackingSnapshot()

	for id, entry := range file.ByMessage {
		snapshot.ByMessage[domain.MessageID(id)] = domain.TrackingRecord{
			ID:                      domain.MessageID(id),
			SourceConversation:      domain.ConversationID(entry.SourceConversation),
			DestinationConversation: domain.ConversationID(entry.DestinationConversation),
			AuthorID:                domain.AuthorID(entry.AuthorID),
			AuthorDisplayName:       entry.AuthorDisplayName,
			AccountRef:              domain.AccountRef(entry.AccountRef),
			CreatedAt:               parseTime(entry.CreatedAt),
			ReminderCount:           entry.ReminderCount,
			Resolved:                entry.Resolved,
			ResolvedAt:              parseTime(entry.ResolvedAt),
		}
	}
	for ref, id := range file.ByAccount {
		snapshot.ByAccount[domain.AccountRef(ref)] = domain.MessageID(id)
	}
	snapshot.Prune()

	return snapshot
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
