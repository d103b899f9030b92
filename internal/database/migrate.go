package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

// FindMigrationsDir looks for a migrations directory in start and its parents,
// then next to the running executable.
func FindMigrationsDir(start string) (string, error) {
	candidates := []string{}
	current := start
	for i := 0; i < 6; i++ {
		candidates = append(candidates, filepath.Join(current, "migrations"))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, "migrations"),
			filepath.Join(exeDir, "..", "migrations"),
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", errors.New("migrations directory not found")
}

func withMigrator(dbURL, migrationsDir string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New("file://"+migrationsDir, dbURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warnf("close migrate: source=%v db=%v", srcErr, dbErr)
		}
	}()
	return fn(m)
}

// Migrate runs every pending migration up, or all of them down. Having nothing to
// do is not an error.
func Migrate(dbURL, migrationsDir string, down bool) error {
	return withMigrator(dbURL, migrationsDir, func(m *migrate.Migrate) error {
		step := m.Up
		if down {
			step = m.Down
		}
		if err := step(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	})
}

// MigrationVersion reports the applied schema version. ok is false on an
// unmigrated database.
func MigrationVersion(dbURL, migrationsDir string) (version uint, dirty, ok bool, err error) {
	err = withMigrator(dbURL, migrationsDir, func(m *migrate.Migrate) error {
		v, d, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		version, dirty, ok = v, d, true
		return nil
	})
	return version, dirty, ok, err
}
