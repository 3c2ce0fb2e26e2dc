package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/relkit/relkit/internal/models"
)

// Updater rewrites image references in tracked release files so deploy
// manifests always pin the version being released. The caller is responsible
// for committing the mutated files.
type Updater struct {
	repository string
	logger     *slog.Logger
}

// NewUpdater creates an artifact Updater for the given image repository.
func NewUpdater(repository string, logger *slog.Logger) *Updater {
	return &Updater{repository: repository, logger: logger}
}

// Apply replaces every "<repository>:<tag>" reference in the given files with
// the new version tag. Files that do not exist are skipped. Each file is
// rewritten through a temporary copy and an atomic rename so a mid-write
// failure never leaves a half-written file behind. Returns the paths that
// were actually updated.
func (u *Updater) Apply(version models.Version, root string, files []string) ([]string, error) {
	pattern, err := regexp.Compile(regexp.QuoteMeta(u.repository) + `:[A-Za-z0-9][A-Za-z0-9._-]*`)
	if err != nil {
		return nil, fmt.Errorf("build image reference pattern: %w", err)
	}
	replacement := u.repository + ":" + version.String()

	var updated []string
	for _, rel := range files {
		path := filepath.Join(root, rel)

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			u.logger.Warn("artifact file not found, skipping", "path", rel)
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("stat %s: %w", rel, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return updated, fmt.Errorf("read %s: %w", rel, err)
		}

		rewritten := pattern.ReplaceAll(data, []byte(replacement))
		if string(rewritten) == string(data) {
			continue
		}

		if err := atomicWrite(path, rewritten, info.Mode()); err != nil {
			return updated, fmt.Errorf("update %s: %w", rel, err)
		}

		u.logger.Info("updated artifact", "path", rel, "version", version.String())
		updated = append(updated, rel)
	}
	return updated, nil
}

// atomicWrite writes data to a temporary file next to path and renames it
// into place.
func atomicWrite(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
