package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/automation-practice/sessionboot/internal/browser"
	internalcli "github.com/automation-practice/sessionboot/internal/cli"
	"github.com/automation-practice/sessionboot/internal/config"
	"github.com/automation-practice/sessionboot/internal/database"
	"github.com/automation-practice/sessionboot/internal/models"
	"github.com/automation-practice/sessionboot/internal/services"
)

var version = "0.1.0"

// loadHarnessConfig reads harness settings from the process environment
func loadHarnessConfig() (*config.HarnessConfig, error) {
	cfg, err := config.LoadHarnessConfig(config.Environ())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// BootstrapCommand returns the bootstrap command, also used as the subprocess entry point
func BootstrapCommand() *cli.Command {
	return &cli.Command{
		Name:  "bootstrap",
		Usage: "Sign up, log in and save the browser storage state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "display name, also the login username", Required: true},
			&cli.StringFlag{Name: "email", Usage: "signup email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "signup password", Required: true},
			&cli.StringFlag{Name: "storage", Usage: "path of the storage state file", Required: true},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadHarnessConfig()
			if err != nil {
				return err
			}
			creds := models.Credentials{
				Name:     c.String("name"),
				Email:    c.String("email"),
				Password: c.String("password"),
			}
			b := browser.NewBootstrapper(browser.OptionsFromConfig(cfg))
			if err := internalcli.RunBootstrap(c.Context, c.App.ErrWriter, b, creds, c.String("storage")); err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// EnsureCommand returns the ensure command
func EnsureCommand() *cli.Command {
	return &cli.Command{
		Name:  "ensure",
		Usage: "Reuse the saved storage state or bootstrap a new one",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "discard the existing state first"},
			&cli.StringFlag{Name: "mode", Usage: "bootstrap mode, inprocess or subprocess (default from BOOTSTRAP_MODE)"},
		},
		Action: func(c *cli.Context) error {
			environ := config.Environ()
			if mode := c.String("mode"); mode != "" {
				environ["BOOTSTRAP_MODE"] = mode
			}
			cfg, err := config.LoadHarnessConfig(environ)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			var b services.Bootstrapper = browser.NewBootstrapper(browser.OptionsFromConfig(cfg))
			if cfg.BootstrapMode == config.BootstrapSubprocess {
				b = services.NewCommandBootstrapper(cfg.BootstrapCmd)
			}
			ensurer := services.NewSessionService(b, cfg.StorageState, cfg.Credentials())
			return internalcli.RunEnsure(c.Context, c.App.Writer, ensurer, c.Bool("force"))
		},
	}
}

// CheckCommand returns the check command
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Report whether the saved storage state is usable",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "storage", Usage: "path of the storage state file (default from STORAGE_STATE)"},
			&cli.StringFlag{Name: "probe", Usage: "page URL that requires the session, checked over HTTP"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadHarnessConfig()
			if err != nil {
				return err
			}
			path := cfg.StorageState
			if p := c.String("storage"); p != "" {
				path = p
			}
			err = internalcli.RunCheck(c.Context, c.App.Writer, internalcli.CheckOptions{
				Path:     path,
				ProbeURL: c.String("probe"),
				Prober:   services.NewProbeClient(cfg.BrowserTimeout),
			})
			if errors.Is(err, internalcli.ErrCheckFailed) {
				return cli.Exit(err.Error(), 1)
			}
			return err
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the automation practice site",
		Action: func(c *cli.Context) error {
			serverCfg, err := config.LoadServerConfig(config.Environ())
			if err != nil {
				return err
			}
			dbCfg, err := config.LoadDatabaseConfig(os.Getenv)
			if err != nil {
				return err
			}

			db, err := database.Connect(dbCfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()
			log.Printf("[INFO] connected to %s database", dbCfg.Driver)

			if err := database.RunMigrations(db); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			deps, err := internalcli.BuildServerDependencies(db, serverCfg, version)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.Msec, log.LevelBraces)
		return
	}
	log.Setup(log.Msec, log.LevelBraces)
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "sessionboot",
		Usage:   "Bootstrap and reuse authenticated browser sessions for e2e tests",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dbg", Usage: "debug mode", EnvVars: []string{"DEBUG"}},
		},
		Before: func(c *cli.Context) error {
			setupLog(c.Bool("dbg"))
			return nil
		},
		Commands: []*cli.Command{
			BootstrapCommand(),
			EnsureCommand(),
			CheckCommand(),
			ServeCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
}
