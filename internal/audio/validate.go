package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions are the audio formats accepted for detection.
var SupportedExtensions = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg", ".aac"}

// Validate checks that the audio reference points at an existing
// regular file with a supported extension. Deeper format validation is
// each provider's concern; this is the structural pre-check the
// coordinator's contract assumes the HTTP layer has done.
func Validate(audioPath string) error {
	if audioPath == "" {
		return fmt.Errorf("audio file path is required")
	}

	ext := strings.ToLower(filepath.Ext(audioPath))
	if !extSupported(ext) {
		return fmt.Errorf("unsupported file format %q (supported: %s)",
			ext, strings.Join(SupportedExtensions, ", "))
	}

	fi, err := os.Stat(audioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("audio file not found: %s", audioPath)
		}
		return fmt.Errorf("stat audio file: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("audio path is a directory: %s", audioPath)
	}

	return nil
}

func extSupported(ext string) bool {
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
