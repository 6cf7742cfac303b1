// Package cli implements the sessionboot commands: bootstrap, ensure, check and serve.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/services"
	"github.com/automation-practice/sessionboot/internal/statefile"
)

// ErrCheckFailed is returned by RunCheck when the state is unusable or the probe was rejected
var ErrCheckFailed = errors.New("session check failed")

// Ensurer makes sure the session state file is usable
type Ensurer interface {
	Ensure(ctx context.Context, force bool) (services.EnsureResult, error)
}

// RunBootstrap signs up, logs in and saves the state to storagePath.
// Failures are reported to errOut as a single [bootstrap] line.
func RunBootstrap(ctx context.Context, errOut io.Writer, b services.Bootstrapper, creds models.Credentials, storagePath string) error {
	if err := b.Bootstrap(ctx, creds, storagePath); err != nil {
		fmt.Fprintf(errOut, "[bootstrap] error: %v\n", err)
		return err
	}
	return nil
}

// RunEnsure reuses or regenerates the state and prints what happened
func RunEnsure(ctx context.Context, out io.Writer, ensurer Ensurer, force bool) error {
	res, err := ensurer.Ensure(ctx, force)
	if err != nil {
		return err
	}
	if res.Reused {
		fmt.Fprintf(out, "storage state %s is valid, reused\n", res.Path)
		return nil
	}
	fmt.Fprintf(out, "storage state %s bootstrapped for %s\n", res.Path, res.Email)
	return nil
}

// CheckOptions control RunCheck
type CheckOptions struct {
	Path     string
	ProbeURL string // optional page that needs the session
	Prober   services.ProbeClient
}

// RunCheck prints the state file's status, counts and digest, optionally probing the live site
func RunCheck(ctx context.Context, out io.Writer, opts CheckOptions) error {
	rep := statefile.Inspect(opts.Path)
	fmt.Fprintf(out, "path:    %s\n", rep.Path)
	fmt.Fprintf(out, "status:  %s\n", rep.Status)
	fmt.Fprintf(out, "cookies: %d\n", rep.Cookies)
	fmt.Fprintf(out, "origins: %d\n", rep.Origins)
	if rep.Status != statefile.StatusMissing {
		digest, err := statefile.Digest(opts.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "sha256:  %s\n", digest)
	}
	if rep.Status != statefile.StatusUsable {
		return fmt.Errorf("%w: %s is %s", ErrCheckFailed, rep.Path, rep.Status)
	}

	if opts.ProbeURL == "" {
		return nil
	}
	state, err := statefile.Load(opts.Path)
	if err != nil {
		return err
	}
	res, err := opts.Prober.Probe(ctx, state, opts.ProbeURL)
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", opts.ProbeURL, err)
	}
	fmt.Fprintf(out, "probe:   %s -> %d, authenticated=%v\n", opts.ProbeURL, res.StatusCode, res.Authenticated)
	if !res.Authenticated {
		return fmt.Errorf("%w: session rejected by %s", ErrCheckFailed, opts.ProbeURL)
	}
	return nil
}
