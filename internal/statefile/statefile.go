// Package statefile reads, validates and writes the persisted browser session state.
package statefile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
)

// Status classifies a session state file
type Status string

// File statuses, only StatusUsable can be handed to a browser context
const (
	StatusMissing  Status = "missing"
	StatusEmpty    Status = "empty"
	StatusCorrupt  Status = "corrupt"
	StatusUnusable Status = "unusable"
	StatusUsable   Status = "usable"
)

// ErrNotUsable is returned by Load when the file can't be used to restore a session
var ErrNotUsable = errors.New("storage state is not usable")

// Report describes the result of inspecting a state file
type Report struct {
	Path    string
	Status  Status
	Cookies int
	Origins int
	Err     error // parse or stat error for missing/corrupt files
}

// Inspect examines the file at path without modifying it
func Inspect(path string) Report {
	rep := Report{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		rep.Status, rep.Err = StatusMissing, err
		return rep
	}
	if info.IsDir() {
		rep.Status, rep.Err = StatusCorrupt, fmt.Errorf("%s is a directory", path)
		return rep
	}
	if info.Size() == 0 {
		rep.Status = StatusEmpty
		return rep
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from harness config
	if err != nil {
		rep.Status, rep.Err = StatusCorrupt, err
		return rep
	}
	state, err := models.ParseStorageState(data)
	if err != nil {
		rep.Status, rep.Err = StatusCorrupt, err
		return rep
	}

	rep.Cookies, rep.Origins = len(state.Cookies), len(state.Origins)
	if !state.Usable() {
		rep.Status = StatusUnusable
		return rep
	}
	rep.Status = StatusUsable
	return rep
}

// Valid returns true if the file exists and holds at least one cookie or origin
func Valid(path string) bool {
	return Inspect(path).Status == StatusUsable
}

// Load reads a usable state from path
func Load(path string) (*models.StorageState, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from harness config
	if err != nil {
		return nil, fmt.Errorf("failed to read storage state: %w", err)
	}
	state, err := models.ParseStorageState(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotUsable, err)
	}
	if !state.Usable() {
		return nil, fmt.Errorf("%w: %s has no cookies or origins", ErrNotUsable, path)
	}
	return state, nil
}

// Save writes the state to path atomically, creating the parent directory
func Save(path string, state *models.StorageState) error {
	data, err := state.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-state-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write storage state: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set storage state permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close storage state: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move storage state into place: %w", err)
	}

	log.Printf("[DEBUG] saved storage state to %s (%d cookies, %d origins)", path, len(state.Cookies), len(state.Origins))
	return nil
}

// Remove deletes the state file, a missing file is not an error
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove storage state: %w", err)
	}
	return nil
}

// Digest returns the hex encoded SHA-256 of the file
func Digest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from harness config
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
