package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Logger is the subset of *logging.Logger the store reports through.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}

// FileStore persists the configuration as a single document on disk.
type FileStore struct {
	path   string
	format Format
	logger Logger
	mu     sync.Mutex
}

// NewFileStore creates a document store. If path is empty the per-user
// default location is used. A nil logger discards messages.
func NewFileStore(path string, logger Logger) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if logger == nil {
		logger = nopLogger{}
	}

	return &FileStore{
		path:   path,
		format: FormatForPath(path),
		logger: logger,
	}, nil
}

// Read decodes the document as stored, without migration. A missing file
// yields an error wrapping fs.ErrNotExist.
func (s *FileStore) Read() (Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Decode(data, s.format)
}

// Load returns the migrated, normalized configuration. It never fails: a
// missing or unreadable document yields DefaultConfiguration.
func (s *FileStore) Load() Configuration {
	loaded, err := s.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debugf("no settings at %s, using defaults", s.path)
		} else {
			s.logger.Warnf("error loading settings from %s: %v", s.path, err)
		}
		loaded = DefaultConfiguration()
	}

	migrated := Migrate(loaded)
	Normalize(&migrated)
	return migrated
}

// Save writes the document atomically through a temp file and rename.
func (s *FileStore) Save(cfg Configuration) error {
	data, err := Encode(cfg, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp settings file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

// Format returns the encoding used for the document.
func (s *FileStore) Format() Format {
	return s.format
}
