package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a flat, jailed file store for server-generated assets (avatars).
// Names come from the application, never directly from clients, but the
// validator still refuses anything that escapes the root.
type Store struct {
	validator *PathValidator
}

func New(root string) (*Store, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &Store{validator: validator}, nil
}

func (s *Store) RootAbs() string {
	return s.validator.RootAbs()
}

func (s *Store) OpenForRead(name string) (*os.File, error) {
	resolved, err := s.validator.ResolvePath(name)
	if err != nil {
		return nil, err
	}

	return os.Open(resolved)
}

func (s *Store) OpenForWrite(name string) (*os.File, error) {
	resolved, err := s.validator.ResolvePath(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create parent directory: %w", err)
	}

	return os.OpenFile(resolved, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

func (s *Store) Remove(name string) error {
	resolved, err := s.validator.ResolvePath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", name, err)
	}

	return nil
}
