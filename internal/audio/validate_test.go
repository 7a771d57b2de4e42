package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	wav := filepath.Join(dir, "sample.wav")
	if err := os.WriteFile(wav, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("valid_file", func(t *testing.T) {
		if err := Validate(wav); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", wav, err)
		}
	})

	t.Run("uppercase_extension", func(t *testing.T) {
		upper := filepath.Join(dir, "sample.MP3")
		if err := os.WriteFile(upper, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Validate(upper); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", upper, err)
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		if err := Validate(filepath.Join(dir, "nope.wav")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		txt := filepath.Join(dir, "notes.txt")
		if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Validate(txt); err == nil {
			t.Error("expected error for unsupported extension")
		}
	})

	t.Run("empty_path", func(t *testing.T) {
		if err := Validate(""); err == nil {
			t.Error("expected error for empty path")
		}
	})

	t.Run("directory", func(t *testing.T) {
		sub := filepath.Join(dir, "clips.wav")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := Validate(sub); err == nil {
			t.Error("expected error for directory path")
		}
	})
}
