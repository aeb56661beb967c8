package retention

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Sweep deletes capture artifacts in dir whose age exceeds the retention
// policy. Age comes from the file's modification time. A file that fails
// to stat or delete is logged and skipped so one stuck artifact never
// blocks the rest of the sweep. A missing directory means nothing to do.
//
// Returns the number of artifacts removed.
func Sweep(ctx context.Context, dir string, policy model.RetentionPolicy, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read artifact directory", goerr.V("dir", dir))
	}

	logger := logging.From(ctx)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !model.IsArtifactName(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logger.Warn("skipping unreadable artifact", "name", entry.Name(), "error", err)
			continue
		}

		if !policy.Expired(now.Sub(info.ModTime())) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			// Already gone is fine: another process or the user beat us to it
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			logger.Warn("failed to remove expired artifact", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("removed expired capture artifacts", "count", removed, "dir", dir)
	}
	return removed, nil
}
