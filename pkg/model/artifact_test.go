package model_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/gt"
)

func TestNewArtifactPath(t *testing.T) {
	path := model.NewArtifactPath("/tmp/shots", time.Now())
	gt.Equal(t, filepath.Dir(path), "/tmp/shots")
	gt.True(t, model.IsArtifactName(filepath.Base(path)))

	// Paths are unique even within the same instant
	now := time.Now()
	gt.True(t, model.NewArtifactPath("/tmp", now) != model.NewArtifactPath("/tmp", now))
}

func TestIsArtifactName(t *testing.T) {
	gt.True(t, model.IsArtifactName("ss_01hxyz.png"))
	gt.True(t, !model.IsArtifactName("screenshot.png"))
	gt.True(t, !model.IsArtifactName("ss_01hxyz.jpg"))
	gt.True(t, !model.IsArtifactName("notes.txt"))
}
