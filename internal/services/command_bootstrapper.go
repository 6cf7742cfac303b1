package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
)

// commandAttempts is the first run plus a single retry
const commandAttempts = 2

// runFunc executes one command, returning a non-nil error on non-zero exit
type runFunc func(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error

// CommandBootstrapper runs the bootstrap command as a subprocess
type CommandBootstrapper struct {
	command []string
	stdout  io.Writer
	stderr  io.Writer
	run     runFunc
}

// NewCommandBootstrapper creates a bootstrapper invoking command (program plus leading args).
// The bootstrap subcommand and its flags are appended on every call.
func NewCommandBootstrapper(command []string) *CommandBootstrapper {
	return &CommandBootstrapper{
		command: command,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		run:     execRun,
	}
}

// Bootstrap runs the subprocess, retrying once if it fails
func (b *CommandBootstrapper) Bootstrap(ctx context.Context, creds models.Credentials, storagePath string) error {
	if len(b.command) == 0 {
		return fmt.Errorf("bootstrap command is not configured")
	}

	args := append(append([]string{}, b.command[1:]...),
		"bootstrap",
		"--name", creds.Name,
		"--email", creds.Email,
		"--password", creds.Password,
		"--storage", storagePath,
	)
	log.Printf("[INFO] bootstrapping: %s %s", b.command[0], maskPassword(args))

	var lastErr error
	for attempt := 1; attempt <= commandAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("bootstrap canceled: %w", err)
		}
		lastErr = b.run(ctx, b.command[0], args, b.stdout, b.stderr)
		if lastErr == nil {
			return nil
		}
		log.Printf("[WARN] bootstrap attempt %d/%d failed: %v", attempt, commandAttempts, lastErr)
	}
	return fmt.Errorf("bootstrap command failed after %d attempts: %w", commandAttempts, lastErr)
}

// execRun runs the command with os/exec, streaming its output
func execRun(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // command comes from harness config
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// maskPassword renders args for logging with the --password value hidden
func maskPassword(args []string) string {
	masked := make([]string, len(args))
	copy(masked, args)
	for i := 0; i < len(masked)-1; i++ {
		if masked[i] == "--password" {
			masked[i+1] = "****"
		}
	}
	return strings.Join(masked, " ")
}
