package model

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

type RecognitionLevel string

const (
	RecognitionAccurate RecognitionLevel = "accurate"
	RecognitionFast     RecognitionLevel = "fast"
)

// Config is the persisted user configuration at ~/.openss/config.yml.
// Process-level settings (API keys, Firestore project) come from flags and
// environment variables instead; credentials are never stored here.
type Config struct {
	Model        ModelID `yaml:"model"`
	Autocopy     bool    `yaml:"autocopy"`
	AutocopyMode string  `yaml:"autocopy_mode"` // "answer" or "code"

	MaxOCRPreview   int `yaml:"max_ocr_preview"`
	MaxContextChars int `yaml:"max_context_chars"`

	OCRLanguages        []string         `yaml:"ocr_languages"`
	OCRRecognitionLevel RecognitionLevel `yaml:"ocr_recognition_level"`
	OCRTimeoutSeconds   int              `yaml:"ocr_timeout_seconds"`
	DebugOCR            bool             `yaml:"debug_ocr"`

	RetentionDays int `yaml:"retention_days"`

	PromptMain     string `yaml:"prompt_main"`
	PromptFollowup string `yaml:"prompt_followup"`
	PromptGeneral  string `yaml:"prompt_general"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:               DefaultModelID,
		Autocopy:            true,
		AutocopyMode:        "answer",
		MaxOCRPreview:       800,
		MaxContextChars:     8000,
		OCRLanguages:        []string{"en-US"},
		OCRRecognitionLevel: RecognitionAccurate,
		OCRTimeoutSeconds:   20,
		RetentionDays:       3,

		PromptMain: "OCR TEXT:\n{text}\n\n" +
			"TASK:\n" +
			"- Detect all questions (coding, MCQ, theory, math).\n" +
			"- Respond ONLY with a numbered list of answers.\n" +
			"- Do NOT rewrite the questions.\n" +
			"- Keep answers concise and neat.\n" +
			"- For coding tasks, provide code only.\n" +
			"- For MCQ, give option letter/number plus a short reason.\n" +
			"- If missing info, say \"Missing info: ...\".\n",
		PromptFollowup: "Conversation so far:\n{context}\n\n" +
			"User follow-up:\n{question}\n\n" +
			"Answer clearly and concisely.",
		PromptGeneral: "User question: {question}\n\n" +
			"Answer clearly and concisely.",
	}
}

// Retention returns the artifact retention policy derived from config
func (c *Config) Retention() RetentionPolicy {
	days := c.RetentionDays
	if days <= 0 {
		days = 3
	}
	return RetentionPolicy{MaxAge: time.Duration(days) * 24 * time.Hour}
}

// OCRTimeout returns the extraction deadline
func (c *Config) OCRTimeout() time.Duration {
	if c.OCRTimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.OCRTimeoutSeconds) * time.Second
}

// LoadConfig reads the config file, filling unset fields with defaults.
// A missing file yields the defaults without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
	}
	return cfg, nil
}

// Save writes the config file, creating its directory if needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write config", goerr.V("path", path))
	}
	return nil
}

// Set updates one key from its string representation, used by the config
// subcommand. Prompt templates are file-edit only.
func (c *Config) Set(key, value string) error {
	switch key {
	case "model":
		id := ModelID(value)
		if err := id.Validate(); err != nil {
			return err
		}
		c.Model = id
	case "autocopy":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return goerr.Wrap(err, "autocopy must be true or false")
		}
		c.Autocopy = b
	case "autocopy_mode":
		if value != "answer" && value != "code" {
			return goerr.New("autocopy_mode must be answer or code", goerr.V("value", value))
		}
		c.AutocopyMode = value
	case "debug_ocr":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return goerr.Wrap(err, "debug_ocr must be true or false")
		}
		c.DebugOCR = b
	case "ocr_recognition_level":
		switch RecognitionLevel(value) {
		case RecognitionAccurate, RecognitionFast:
			c.OCRRecognitionLevel = RecognitionLevel(value)
		default:
			return goerr.New("ocr_recognition_level must be accurate or fast", goerr.V("value", value))
		}
	case "retention_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return goerr.New("retention_days must be a non-negative integer", goerr.V("value", value))
		}
		c.RetentionDays = n
	case "max_context_chars":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return goerr.New("max_context_chars must be a positive integer", goerr.V("value", value))
		}
		c.MaxContextChars = n
	case "max_ocr_preview":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return goerr.New("max_ocr_preview must be a positive integer", goerr.V("value", value))
		}
		c.MaxOCRPreview = n
	case "ocr_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return goerr.New("ocr_timeout_seconds must be a positive integer", goerr.V("value", value))
		}
		c.OCRTimeoutSeconds = n
	default:
		return goerr.New("unknown config key", goerr.V("key", key))
	}
	return nil
}
