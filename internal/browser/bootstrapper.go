package browser

import (
	"context"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/services"
)

// Bootstrapper launches a browser only when a bootstrap is actually needed
type Bootstrapper struct {
	opts Options
}

// NewBootstrapper creates an in-process bootstrapper for opts
func NewBootstrapper(opts Options) *Bootstrapper {
	return &Bootstrapper{opts: opts}
}

// Bootstrap launches chromium, runs the signup and login flow and saves the state to storagePath
func (b *Bootstrapper) Bootstrap(ctx context.Context, creds models.Credentials, storagePath string) error {
	session, err := Launch(b.opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}()
	return services.NewBootstrapService(session).Bootstrap(ctx, creds, storagePath)
}
