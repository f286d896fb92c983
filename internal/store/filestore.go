package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

// FileStore keeps the whole user table in a single JSON document,
// rewritten wholesale on every mutation.
//
// A document that fails to parse is quarantined (renamed aside with a
// timestamp suffix) and replaced with an empty table rather than taking
// the service down. Individual records that fail to decode are reset to
// defaults. A process-wide mutex is held across the whole Update cycle,
// so within one process concurrent updates cannot lose writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at the given path. The file
// is created lazily on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the entire user table.
func (s *FileStore) Load(ctx context.Context) (map[string]*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// GetUser returns one user's record, or ErrNotFound.
func (s *FileStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	users, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// SaveUser persists one user's record, rewriting the whole document.
func (s *FileStore) SaveUser(ctx context.Context, userID string, rec *models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadLocked()
	if err != nil {
		return err
	}
	users[userID] = rec
	return s.saveLocked(users)
}

// Update applies fn to the user's record (fresh when absent) and
// persists the result, holding the mutex across the whole
// load-modify-save cycle.
func (s *FileStore) Update(ctx context.Context, userID string, fn func(rec *models.UserRecord) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadLocked()
	if err != nil {
		return err
	}
	rec, ok := users[userID]
	if !ok {
		rec = models.NewUserRecord(time.Now().UTC())
	}
	if err := fn(rec); err != nil {
		return err
	}
	users[userID] = rec
	return s.saveLocked(users)
}

// Backup writes a timestamped copy of the current document next to it.
func (s *FileStore) Backup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store for backup: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", s.path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

func (s *FileStore) loadLocked() (map[string]*models.UserRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]*models.UserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.quarantine(err)
		return map[string]*models.UserRecord{}, nil
	}

	now := time.Now().UTC()
	users := make(map[string]*models.UserRecord, len(raw))
	for userID, blob := range raw {
		if userID == "" {
			continue
		}
		var rec models.UserRecord
		if err := json.Unmarshal(blob, &rec); err != nil {
			log.WithFields(log.Fields{
				"user_id": userID,
				"error":   err,
			}).Warn("Resetting undecodable user record to defaults")
			users[userID] = models.NewUserRecord(now)
			continue
		}
		users[userID] = normalizeRecord(&rec, now)
	}
	return users, nil
}

func (s *FileStore) saveLocked(users map[string]*models.UserRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	// Best-effort backup of the previous document before overwriting.
	if prev, err := os.ReadFile(s.path); err == nil {
		if err := os.WriteFile(s.path+".bak", prev, 0o644); err != nil {
			log.WithError(err).Warn("Failed to write store backup copy")
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// quarantine moves a corrupt document aside so the service can continue
// with an empty table.
func (s *FileStore) quarantine(cause error) {
	quarantinePath := fmt.Sprintf("%s.corrupt.%s", s.path, time.Now().Format("20060102T150405"))
	if err := os.Rename(s.path, quarantinePath); err != nil {
		log.WithError(err).Error("Failed to quarantine corrupt store file")
		return
	}
	log.WithFields(log.Fields{
		"quarantined_as": quarantinePath,
		"error":          cause,
	}).Warn("Store file was corrupt, starting with an empty table")
}
