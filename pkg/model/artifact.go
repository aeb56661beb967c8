package model

import (
	"crypto/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	artifactPrefix = "ss_"
	artifactExt    = ".png"
)

// Artifact is a captured image on disk. It is weakly referenced by at most
// one turn; sweeping it never invalidates the turn's extracted text.
type Artifact struct {
	Path      string
	CreatedAt time.Time
}

// NewArtifactPath returns a fresh artifact path under dir
func NewArtifactPath(dir string, now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(now), entropy).String()
	return filepath.Join(dir, artifactPrefix+strings.ToLower(id)+artifactExt)
}

// IsArtifactName reports whether a file name looks like a capture artifact.
// The sweeper only ever considers these.
func IsArtifactName(name string) bool {
	return strings.HasPrefix(name, artifactPrefix) && strings.HasSuffix(name, artifactExt)
}

// RetentionPolicy bounds how long capture artifacts are kept on disk
type RetentionPolicy struct {
	MaxAge time.Duration
}

// Expired reports whether an artifact of the given age must be deleted.
// Age exactly at the threshold is kept.
func (p RetentionPolicy) Expired(age time.Duration) bool {
	return age > p.MaxAge
}
