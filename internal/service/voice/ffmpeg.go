package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrFFmpegNotAvailable is returned when no ffmpeg executable can be found.
// Either add ffmpeg to PATH or set FFMPEG_PATH to the full path of the binary.
var ErrFFmpegNotAvailable = errors.New("ffmpeg not found: add ffmpeg to PATH or set FFMPEG_PATH")

// resolveFFmpeg locates an ffmpeg executable.
// Priority: explicit path override, then PATH lookup (ffmpeg, avconv).
func resolveFFmpeg(override string) (string, error) {
	if override != "" {
		if info, err := os.Stat(override); err == nil && !info.IsDir() {
			return override, nil
		}
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	if p, err := exec.LookPath("avconv"); err == nil {
		return p, nil
	}
	return "", ErrFFmpegNotAvailable
}

// convertToWAV converts WebM/Opus bytes to mono 16 kHz WAV bytes using ffmpeg
// via stdin/stdout pipes. No temp files are touched.
func convertToWAV(ctx context.Context, ffmpegPath string, webm []byte) ([]byte, error) {
	if len(webm) == 0 {
		return nil, errors.New("empty audio upload (0 bytes)")
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(webm)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil || stdout.Len() == 0 {
		detail := stderr.String()
		if len(detail) > 800 {
			detail = detail[:800]
		}
		return nil, fmt.Errorf("ffmpeg conversion failed: %v %s", err, detail)
	}
	return stdout.Bytes(), nil
}
