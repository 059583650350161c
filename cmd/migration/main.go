package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/arena-scrim/internal/config"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Migrate(version uint) error
}

type command struct {
	name   string
	steps  int
	target uint
	force  int
}

func main() {
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Service: "arena-scrim-migration"})
	defer func() { _ = logger.Sync() }()

	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		os.Exit(2)
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		logger.Error("load database config", "error", err)
		os.Exit(1)
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		os.Exit(1)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbCfg.DatabaseDSN())
	if err != nil {
		logger.Error("create migrator", "error", err)
		os.Exit(1)
	}

	runErr := run(m, cmd, logger)
	closeMigrator(m, logger)
	if runErr != nil {
		logger.Error("migration command failed", "command", cmd.name, "source", sourceURL, "error", runErr)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("missing command")
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	rest := args[1:]
	switch cmd.name {
	case "up", "version":
		return cmd, nil
	case "down":
		steps, err := parseSteps(rest)
		if err != nil {
			return command{}, err
		}
		cmd.steps = steps
		return cmd, nil
	case "force":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return command{}, err
		}
		cmd.force = version
		return cmd, nil
	case "goto", "migrate":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseTarget(rest[0])
		if err != nil {
			return command{}, err
		}
		cmd.name = "goto"
		cmd.target = target
		return cmd, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
}

func run(m migrator, cmd command, logger *logging.Logger) error {
	switch cmd.name {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return err
		}
		logger.Info("migrations applied")
	case "down":
		if err := ignoreNoChange(m.Steps(-cmd.steps), logger); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", cmd.steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if err := m.Force(cmd.force); err != nil {
			return fmt.Errorf("force version %d: %w", cmd.force, err)
		}
		logger.Info("forced migration version", "version", cmd.force)
	case "goto":
		if err := ignoreNoChange(m.Migrate(cmd.target), logger); err != nil {
			return err
		}
		logger.Info("migrated to version", "version", cmd.target)
	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [n]|version|force v|goto v>\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1\n", name)
}
