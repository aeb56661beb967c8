package model_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/gt"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "config.yml"))
	gt.NoError(t, err)
	gt.Equal(t, cfg.Model, model.DefaultModelID)
	gt.True(t, cfg.Autocopy)
	gt.Equal(t, cfg.RetentionDays, 3)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	cfg := model.DefaultConfig()
	cfg.Model = "gemini/gemini-2.5-pro"
	cfg.AutocopyMode = "code"
	cfg.RetentionDays = 7
	gt.NoError(t, cfg.Save(path))

	loaded, err := model.LoadConfig(path)
	gt.NoError(t, err)
	gt.Equal(t, loaded.Model, model.ModelID("gemini/gemini-2.5-pro"))
	gt.Equal(t, loaded.AutocopyMode, "code")
	gt.Equal(t, loaded.RetentionDays, 7)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	gt.NoError(t, os.WriteFile(path, []byte("autocopy: false\n"), 0o644))

	cfg, err := model.LoadConfig(path)
	gt.NoError(t, err)
	gt.True(t, !cfg.Autocopy)
	gt.Equal(t, cfg.Model, model.DefaultModelID)
	gt.S(t, cfg.PromptMain).Contains("{text}")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	gt.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o644))

	_, err := model.LoadConfig(path)
	gt.Error(t, err)
}

func TestConfigSet(t *testing.T) {
	cfg := model.DefaultConfig()

	gt.NoError(t, cfg.Set("model", "openai/gpt-4o"))
	gt.Equal(t, cfg.Model, model.ModelID("openai/gpt-4o"))

	gt.NoError(t, cfg.Set("autocopy", "false"))
	gt.True(t, !cfg.Autocopy)

	gt.NoError(t, cfg.Set("autocopy_mode", "code"))
	gt.Equal(t, cfg.AutocopyMode, "code")

	gt.NoError(t, cfg.Set("ocr_recognition_level", "fast"))
	gt.Equal(t, cfg.OCRRecognitionLevel, model.RecognitionFast)

	gt.NoError(t, cfg.Set("retention_days", "14"))
	gt.Equal(t, cfg.RetentionDays, 14)
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	cfg := model.DefaultConfig()

	gt.Error(t, cfg.Set("model", "not-a-model"))
	gt.Error(t, cfg.Set("autocopy", "maybe"))
	gt.Error(t, cfg.Set("autocopy_mode", "both"))
	gt.Error(t, cfg.Set("ocr_recognition_level", "precise"))
	gt.Error(t, cfg.Set("retention_days", "-1"))
	gt.Error(t, cfg.Set("max_context_chars", "0"))
	gt.Error(t, cfg.Set("no_such_key", "x"))
}

func TestRetentionPolicy(t *testing.T) {
	cfg := model.DefaultConfig()
	gt.Equal(t, cfg.Retention().MaxAge, 72*time.Hour)

	policy := cfg.Retention()
	gt.True(t, !policy.Expired(72*time.Hour))
	gt.True(t, policy.Expired(72*time.Hour+time.Second))
}

func TestOCRTimeout(t *testing.T) {
	cfg := model.DefaultConfig()
	gt.Equal(t, cfg.OCRTimeout(), 20*time.Second)

	cfg.OCRTimeoutSeconds = 5
	gt.Equal(t, cfg.OCRTimeout(), 5*time.Second)

	cfg.OCRTimeoutSeconds = 0
	gt.Equal(t, cfg.OCRTimeout(), 20*time.Second)
}
