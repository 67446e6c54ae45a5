// Package rollback keeps the rollback points of an installation run: a
// timestamped backup of the configuration file plus the packages installed
// after the point was taken.
package rollback

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/druarnfield/mcp11/internal/serverconfig"
)

// ErrNoRollbackPoints is returned when a rollback is requested before any
// point was created.
var ErrNoRollbackPoints = errors.New("no rollback points available")

// Point is a recorded snapshot that a rollback restores to.
type Point struct {
	// CreatedAt is when the point was taken; its epoch milliseconds name
	// the backup directory.
	CreatedAt time.Time

	// ConfigBackup is the path of the backed-up configuration file, or
	// empty when no configuration existed.
	ConfigBackup string

	// InstalledPackages accumulates, in install order, every package
	// installed while this was the latest point.
	InstalledPackages []string

	// Action is a free-text label such as "pre-installation".
	Action string
}

// Store manages rollback points for one configuration file. Points live
// in memory; only the configuration backups are written to disk.
type Store struct {
	configPath string
	backupDir  string
	points     []*Point
	now        func() time.Time
}

// NewStore creates a Store that backs up configPath under backupDir.
func NewStore(configPath, backupDir string) *Store {
	return &Store{
		configPath: configPath,
		backupDir:  backupDir,
		now:        time.Now,
	}
}

// CreatePoint ensures <backupDir>/<epoch-ms>/ exists, copies the current
// configuration file into it when one exists, and appends a new point with
// no installed packages.
func (s *Store) CreatePoint(action string) (*Point, error) {
	createdAt := s.now()
	dir, err := s.newBackupDir(createdAt)
	if err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}

	p := &Point{CreatedAt: createdAt, Action: action}

	if _, err := os.Stat(s.configPath); err == nil {
		backup := filepath.Join(dir, serverconfig.FileName)
		if err := copyFile(s.configPath, backup); err != nil {
			return nil, fmt.Errorf("backing up configuration: %w", err)
		}
		p.ConfigBackup = backup
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking configuration: %w", err)
	}

	s.points = append(s.points, p)
	return p, nil
}

// newBackupDir creates <backupDir>/<epochms>. Points taken in the same
// millisecond get a -1, -2, ... suffix so no backup is overwritten.
func (s *Store) newBackupDir(at time.Time) (string, error) {
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", err
	}
	base := filepath.Join(s.backupDir, strconv.FormatInt(at.UnixMilli(), 10))
	dir := base
	for n := 1; ; n++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		dir = base + "-" + strconv.Itoa(n)
	}
}

// RecordInstall appends pkg to the most recent point. It is a no-op when
// no point exists.
func (s *Store) RecordInstall(pkg string) {
	if len(s.points) == 0 {
		return
	}
	latest := s.points[len(s.points)-1]
	latest.InstalledPackages = append(latest.InstalledPackages, pkg)
}

// Latest returns the most recent point.
func (s *Store) Latest() (*Point, error) {
	if len(s.points) == 0 {
		return nil, ErrNoRollbackPoints
	}
	return s.points[len(s.points)-1], nil
}

// Points returns every point, oldest first.
func (s *Store) Points() []Point {
	out := make([]Point, len(s.points))
	for i, p := range s.points {
		out[i] = *p
		out[i].InstalledPackages = append([]string(nil), p.InstalledPackages...)
	}
	return out
}

// Restore copies the point's configuration backup over the configuration
// file. It reports false when there was nothing to restore.
func (s *Store) Restore(p *Point) (bool, error) {
	if p.ConfigBackup == "" {
		return false, nil
	}
	if _, err := os.Stat(p.ConfigBackup); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0755); err != nil {
		return false, err
	}
	if err := copyFile(p.ConfigBackup, s.configPath); err != nil {
		return false, fmt.Errorf("restoring configuration: %w", err)
	}
	return true, nil
}

// UninstallOrder returns the point's packages newest first.
func (p *Point) UninstallOrder() []string {
	out := make([]string, 0, len(p.InstalledPackages))
	for i := len(p.InstalledPackages) - 1; i >= 0; i-- {
		out = append(out, p.InstalledPackages[i])
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
