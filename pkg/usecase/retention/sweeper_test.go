package retention_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/usecase/retention"
	"github.com/m-mizutani/gt"
)

func writeArtifact(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gt.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	gt.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestSweepRemovesExpiredArtifacts(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	policy := model.RetentionPolicy{MaxAge: 72 * time.Hour}

	old := writeArtifact(t, dir, "ss_20260801_120000.png", now.Add(-100*time.Hour))
	fresh := writeArtifact(t, dir, "ss_20260827_090000.png", now.Add(-1*time.Hour))

	removed, err := retention.Sweep(context.Background(), dir, policy, now)
	gt.NoError(t, err)
	gt.Equal(t, removed, 1)

	_, err = os.Stat(old)
	gt.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	gt.NoError(t, err)
}

func TestSweepKeepsArtifactAtBoundary(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	policy := model.RetentionPolicy{MaxAge: 72 * time.Hour}

	// Exactly at the threshold is not expired
	boundary := writeArtifact(t, dir, "ss_20260824_090000.png", now.Add(-72*time.Hour))

	removed, err := retention.Sweep(context.Background(), dir, policy, now)
	gt.NoError(t, err)
	gt.Equal(t, removed, 0)

	_, err = os.Stat(boundary)
	gt.NoError(t, err)
}

func TestSweepIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	policy := model.RetentionPolicy{MaxAge: time.Hour}

	notes := writeArtifact(t, dir, "notes.txt", now.Add(-100*time.Hour))
	screenshot := writeArtifact(t, dir, "screenshot.png", now.Add(-100*time.Hour))

	removed, err := retention.Sweep(context.Background(), dir, policy, now)
	gt.NoError(t, err)
	gt.Equal(t, removed, 0)

	_, err = os.Stat(notes)
	gt.NoError(t, err)
	_, err = os.Stat(screenshot)
	gt.NoError(t, err)
}

func TestSweepContinuesPastRemoveFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions cannot block removal when running as root")
	}

	dir := t.TempDir()
	now := time.Now()
	policy := model.RetentionPolicy{MaxAge: time.Hour}

	stuck := writeArtifact(t, dir, "ss_stuck.png", now.Add(-10*time.Hour))

	// A read-only directory makes every unlink fail; the sweep must log
	// and carry on rather than surface an error
	gt.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	removed, err := retention.Sweep(context.Background(), dir, policy, now)
	gt.NoError(t, err)
	gt.Equal(t, removed, 0)

	_, err = os.Stat(stuck)
	gt.NoError(t, err)
}

func TestSweepMissingDirectory(t *testing.T) {
	removed, err := retention.Sweep(context.Background(),
		filepath.Join(t.TempDir(), "nope"), model.RetentionPolicy{MaxAge: time.Hour}, time.Now())
	gt.NoError(t, err)
	gt.Equal(t, removed, 0)
}
