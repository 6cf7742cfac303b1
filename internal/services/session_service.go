package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/statefile"
)

// ErrStateNotUsable is returned when a bootstrap reported success but left no usable state behind
var ErrStateNotUsable = errors.New("storage state is still not usable after bootstrap")

// EnsureResult describes what Ensure did
type EnsureResult struct {
	Path   string
	Reused bool   // existing state was valid, no bootstrap ran
	Email  string // email used for the bootstrap, empty when reused
}

// SessionService reuses a saved session state or bootstraps a new one
type SessionService struct {
	bootstrapper Bootstrapper
	storagePath  string
	creds        models.Credentials
}

// NewSessionService creates a session service writing to storagePath.
// An empty email in creds is replaced with a generated one on every bootstrap.
func NewSessionService(bootstrapper Bootstrapper, storagePath string, creds models.Credentials) *SessionService {
	return &SessionService{
		bootstrapper: bootstrapper,
		storagePath:  storagePath,
		creds:        creds,
	}
}

// StoragePath returns the state file managed by the service
func (s *SessionService) StoragePath() string {
	return s.storagePath
}

// Ensure makes sure a usable state file exists, bootstrapping when it is missing or invalid.
// With force the existing file is discarded first.
func (s *SessionService) Ensure(ctx context.Context, force bool) (EnsureResult, error) {
	res := EnsureResult{Path: s.storagePath}

	if force {
		log.Printf("[INFO] forced regeneration, removing %s", s.storagePath)
		if err := statefile.Remove(s.storagePath); err != nil {
			return res, err
		}
	}

	rep := statefile.Inspect(s.storagePath)
	if rep.Status == statefile.StatusUsable {
		log.Printf("[DEBUG] reusing storage state %s (%d cookies, %d origins)", s.storagePath, rep.Cookies, rep.Origins)
		res.Reused = true
		return res, nil
	}

	log.Printf("[INFO] storage state %s is %s, bootstrapping", s.storagePath, rep.Status)
	if err := os.MkdirAll(filepath.Dir(s.storagePath), 0o750); err != nil {
		return res, fmt.Errorf("failed to create state directory: %w", err)
	}

	creds := s.creds.WithGeneratedEmail()
	res.Email = creds.Email
	if err := s.bootstrapper.Bootstrap(ctx, creds, s.storagePath); err != nil {
		return res, fmt.Errorf("bootstrap failed: %w", err)
	}

	if after := statefile.Inspect(s.storagePath); after.Status != statefile.StatusUsable {
		return res, fmt.Errorf("%w: %s is %s", ErrStateNotUsable, s.storagePath, after.Status)
	}
	return res, nil
}
