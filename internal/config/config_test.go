package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":8080" {
			t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
		}
		if cfg.DetectTimeout != 90*time.Second {
			t.Errorf("DetectTimeout = %v, want 90s", cfg.DetectTimeout)
		}
		if cfg.ProviderTimeout != 60*time.Second {
			t.Errorf("ProviderTimeout = %v, want 60s", cfg.ProviderTimeout)
		}
		if cfg.MockProviders {
			t.Error("MockProviders = true, want false")
		}
		if cfg.ElevenLabsModel != "scribe_v1" {
			t.Errorf("ElevenLabsModel = %q, want scribe_v1", cfg.ElevenLabsModel)
		}
		if cfg.WhisperModel != "whisper-1" {
			t.Errorf("WhisperModel = %q, want whisper-1", cfg.WhisperModel)
		}
	})

	t.Run("env_vars_read", func(t *testing.T) {
		cleanup := setEnvs(t, map[string]string{
			"SARVAM_API_KEY": "sk-test",
			"DETECT_TIMEOUT": "30s",
		})
		defer cleanup()

		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.SarvamAPIKey != "sk-test" {
			t.Errorf("SarvamAPIKey = %q, want sk-test", cfg.SarvamAPIKey)
		}
		if cfg.DetectTimeout != 30*time.Second {
			t.Errorf("DetectTimeout = %v, want 30s", cfg.DetectTimeout)
		}
	})

	t.Run("cli_overrides_take_priority", func(t *testing.T) {
		cleanup := setEnvs(t, map[string]string{
			"HTTP_ADDR": ":7070",
			"LOG_LEVEL": "warn",
		})
		defer cleanup()

		cfg, err := Load(Overrides{
			EnvFile:  "nonexistent.env",
			HTTPAddr: ":9090",
			LogLevel: "debug",
			Mock:     true,
		})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":9090" {
			t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
		}
		if !cfg.MockProviders {
			t.Error("MockProviders = false, want true via override")
		}
	})

	t.Run("empty_overrides_use_env", func(t *testing.T) {
		cleanup := setEnvs(t, map[string]string{"HTTP_ADDR": ":7070"})
		defer cleanup()

		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":7070" {
			t.Errorf("HTTPAddr = %q, want env value :7070", cfg.HTTPAddr)
		}
	})
}

// setEnvs sets environment variables and returns a cleanup function.
func setEnvs(t *testing.T, envs map[string]string) func() {
	t.Helper()
	originals := make(map[string]string)
	unset := make([]string, 0)

	for k, v := range envs {
		if orig, ok := os.LookupEnv(k); ok {
			originals[k] = orig
		} else {
			unset = append(unset, k)
		}
		os.Setenv(k, v)
	}

	return func() {
		for k, v := range originals {
			os.Setenv(k, v)
		}
		for _, k := range unset {
			os.Unsetenv(k)
		}
	}
}
