package alignment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"quotemash/internal/services"
)

// WhisperX aligns transcripts with WhisperX through uvx.
type WhisperX struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewWhisperX creates a WhisperX aligner with the given configuration.
func NewWhisperX(cfg Config) *WhisperX {
	if strings.TrimSpace(cfg.FFmpegBinary) == "" {
		cfg.FFmpegBinary = FFmpegCommand
	}
	if strings.TrimSpace(cfg.UVXBinary) == "" {
		cfg.UVXBinary = UVXCommand
	}
	if strings.TrimSpace(cfg.Language) == "" {
		cfg.Language = DefaultLanguage
	}
	return &WhisperX{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (w *WhisperX) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	w.commandRunner = runner
}

// AlignWords extracts audioPath to a scratch WAV, aligns transcript against
// it, and returns one Word per transcript word in order.
func (w *WhisperX) AlignWords(ctx context.Context, audioPath, transcript string) ([]Word, error) {
	audioPath = strings.TrimSpace(audioPath)
	if audioPath == "" {
		return nil, services.Wrap(services.ErrValidation, "alignment", "align words", "Audio path required", nil)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, services.Wrap(services.ErrValidation, "alignment", "align words", "Transcript is empty", nil)
	}

	if w.cfg.WorkDir != "" {
		if err := os.MkdirAll(w.cfg.WorkDir, 0o755); err != nil {
			return nil, fmt.Errorf("align words: ensure work dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(w.cfg.WorkDir, "align-*")
	if err != nil {
		return nil, fmt.Errorf("align words: create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	wavPath := filepath.Join(dir, "audio.wav")
	if err := w.run(ctx, w.cfg.FFmpegBinary, buildFFmpegExtractArgs(audioPath, wavPath)...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "alignment", "ffmpeg", "Failed to extract audio from "+audioPath, err)
	}

	transcriptPath := filepath.Join(dir, "transcript.txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		return nil, fmt.Errorf("align words: write transcript: %w", err)
	}

	outputPath := filepath.Join(dir, "words.json")
	if err := w.run(ctx, w.cfg.UVXBinary, w.buildArgs(wavPath, transcriptPath, outputPath)...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "alignment", "whisperx", "Failed to align "+audioPath, err)
	}

	words, err := loadWords(outputPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "alignment", "whisperx", "Unreadable alignment output", err)
	}
	return words, nil
}

func (w *WhisperX) buildArgs(wavPath, transcriptPath, outputPath string) []string {
	args := make([]string, 0, 16)
	device := cpuDevice
	if w.cfg.CUDAEnabled {
		device = cudaDevice
		args = append(args, "--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}
	args = append(args,
		"--from", whisperXPackage,
		"python", "-c", alignScript,
		wavPath,
		transcriptPath,
		outputPath,
		w.cfg.Language,
		device,
	)
	if model := strings.TrimSpace(w.cfg.AlignModel); model != "" {
		args = append(args, model)
	}
	return args
}

// run executes a command, using the custom runner if set.
func (w *WhisperX) run(ctx context.Context, name string, args ...string) error {
	if w.commandRunner != nil {
		return w.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, which breaks
	// loading the wav2vec2 checkpoints WhisperX pins.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

type rawWord struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type alignPayload struct {
	Words    []rawWord `json:"words"`
	Duration float64   `json:"duration"`
}

func loadWords(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload alignPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse alignment json: %w", err)
	}
	if len(payload.Words) == 0 {
		return nil, fmt.Errorf("alignment json has no words")
	}
	return fillMissingTimes(payload.Words, payload.Duration), nil
}

// fillMissingTimes places words WhisperX could not align: a missing start
// takes the previous word's end and a missing end runs to the next known start.
func fillMissingTimes(raw []rawWord, duration float64) []Word {
	words := make([]Word, len(raw))
	prevEnd := 0.0
	for i, rw := range raw {
		word := Word{Text: strings.TrimSpace(rw.Word)}
		if rw.Start != nil {
			word.Start = *rw.Start
		} else {
			word.Start = prevEnd
		}
		if rw.End != nil {
			word.End = *rw.End
		} else {
			word.End = nextStart(raw[i+1:], duration, word.Start)
		}
		if word.End < word.Start {
			word.End = word.Start
		}
		prevEnd = word.End
		words[i] = word
	}
	return words
}

func nextStart(rest []rawWord, duration, fallback float64) float64 {
	for _, rw := range rest {
		if rw.Start != nil {
			return *rw.Start
		}
	}
	if duration > fallback {
		return duration
	}
	return fallback
}
