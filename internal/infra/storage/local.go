package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalMediaStore keeps uploaded avatars on the local filesystem under
// <root>/avatars. File names are generated by the caller and are unique per
// upload, so writes never race each other.
type LocalMediaStore struct {
	root string
}

// NewLocalMediaStore creates the avatars directory if needed.
func NewLocalMediaStore(root string) (*LocalMediaStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage: media root cannot be empty")
	}
	dir := filepath.Join(root, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create media directory %s: %w", dir, err)
	}
	return &LocalMediaStore{root: root}, nil
}

// AvatarDir returns the directory avatars are served from.
func (s *LocalMediaStore) AvatarDir() string {
	return filepath.Join(s.root, "avatars")
}

func (s *LocalMediaStore) SaveAvatar(name string, data []byte) error {
	if filepath.Base(name) != name {
		return fmt.Errorf("storage: invalid avatar file name %q", name)
	}
	path := filepath.Join(s.AvatarDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: failed to write avatar %s: %w", name, err)
	}
	return nil
}

func (s *LocalMediaStore) RemoveAvatar(name string) error {
	if filepath.Base(name) != name {
		return fmt.Errorf("storage: invalid avatar file name %q", name)
	}
	err := os.Remove(filepath.Join(s.AvatarDir(), name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: failed to remove avatar %s: %w", name, err)
	}
	return nil
}
