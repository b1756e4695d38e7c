package alignment

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"quotemash/internal/services"
)

type recordedCall struct {
	name string
	args []string
}

// fakeRunner stands in for ffmpeg and uvx. The uvx call writes output as the
// alignment JSON.
func fakeRunner(t *testing.T, output string, calls *[]recordedCall, transcript *string) func(context.Context, string, ...string) error {
	t.Helper()
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: slices.Clone(args)})
		if name != "uvx" {
			return nil
		}
		script := slices.Index(args, "-c")
		if script < 0 || len(args) < script+7 {
			t.Fatalf("unexpected uvx args: %q", args)
		}
		data, err := os.ReadFile(args[script+3])
		if err != nil {
			t.Fatalf("read transcript: %v", err)
		}
		*transcript = string(data)
		return os.WriteFile(args[script+4], []byte(output), 0o644)
	}
}

func TestWhisperXAlignWords(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "work")
	svc := NewWhisperX(Config{WorkDir: workDir, Language: "en"})
	var calls []recordedCall
	var transcript string
	svc.WithCommandRunner(fakeRunner(t, `{"words":[
		{"word":"Donkey,","start":0.10,"end":0.42},
		{"word":"you","start":0.50,"end":0.61},
		{"word":"have","start":0.63,"end":0.80},
		{"word":"2","start":null,"end":null},
		{"word":"go","start":1.20,"end":1.40}
	],"duration":2.0}`, &calls, &transcript))

	words, err := svc.AlignWords(context.Background(), "audios/q.mp3", "Donkey, you have 2 go")
	if err != nil {
		t.Fatalf("AlignWords: %v", err)
	}
	if transcript != "Donkey, you have 2 go" {
		t.Fatalf("unexpected transcript passed to whisperx: %q", transcript)
	}
	if len(calls) != 2 || calls[0].name != "ffmpeg" || calls[1].name != "uvx" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
	ffmpegArgs := strings.Join(calls[0].args, " ")
	for _, fragment := range []string{"-i audios/q.mp3", "-ac 1", "-ar 16000", "pcm_s16le"} {
		if !strings.Contains(ffmpegArgs, fragment) {
			t.Fatalf("expected %q in ffmpeg args %q", fragment, ffmpegArgs)
		}
	}
	uvxArgs := calls[1].args
	if !slices.Contains(uvxArgs, PypiIndexURL) || slices.Contains(uvxArgs, CUDAIndexURL) {
		t.Fatalf("unexpected index urls: %q", uvxArgs)
	}
	if uvxArgs[len(uvxArgs)-1] != "cpu" || uvxArgs[len(uvxArgs)-2] != "en" {
		t.Fatalf("expected language and cpu device at the end, got %q", uvxArgs)
	}

	if len(words) != 5 {
		t.Fatalf("expected 5 words, got %d", len(words))
	}
	if words[0] != (Word{Text: "Donkey,", Start: 0.10, End: 0.42}) {
		t.Fatalf("unexpected first word: %+v", words[0])
	}
	if words[3].Start != 0.80 || words[3].End != 1.20 {
		t.Fatalf("expected unaligned word to fill the gap, got %+v", words[3])
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch dir to be removed, found %d entries", len(entries))
	}
}

func TestWhisperXBuildArgsCUDAAndModel(t *testing.T) {
	svc := NewWhisperX(Config{CUDAEnabled: true, AlignModel: "WAV2VEC2_ASR_LARGE_LV60K_960H", Language: "fr"})
	args := svc.buildArgs("a.wav", "t.txt", "o.json")
	if args[0] != "--index-url" || args[1] != CUDAIndexURL || args[3] != PypiIndexURL {
		t.Fatalf("unexpected index args: %q", args[:4])
	}
	tail := args[len(args)-3:]
	if !slices.Equal(tail, []string{"fr", "cuda", "WAV2VEC2_ASR_LARGE_LV60K_960H"}) {
		t.Fatalf("unexpected tail: %q", tail)
	}
	if !slices.Contains(args, alignScript) {
		t.Fatal("expected embedded script in args")
	}
}

func TestWhisperXAlignWordsErrors(t *testing.T) {
	svc := NewWhisperX(Config{WorkDir: t.TempDir()})
	if _, err := svc.AlignWords(context.Background(), "", "text"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing audio, got %v", err)
	}
	if _, err := svc.AlignWords(context.Background(), "a.mp3", "   "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty transcript, got %v", err)
	}

	boom := errors.New("exit status 1")
	svc.WithCommandRunner(func(_ context.Context, name string, _ ...string) error {
		if name == "ffmpeg" {
			return boom
		}
		return nil
	})
	_, err := svc.AlignWords(context.Background(), "a.mp3", "hello")
	if !errors.Is(err, services.ErrExternalTool) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped ffmpeg failure, got %v", err)
	}

	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	if _, err := svc.AlignWords(context.Background(), "a.mp3", "hello"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected missing output to be an external tool error, got %v", err)
	}
}

func TestIntervalJSONUsesMilliseconds(t *testing.T) {
	data, err := json.Marshal(Interval{Start: 1500 * time.Millisecond, End: 2 * time.Second})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"start_ms":1500,"end_ms":2000}` {
		t.Fatalf("unexpected json %s", data)
	}
	var back Interval
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Duration() != 500*time.Millisecond {
		t.Fatalf("unexpected duration %v", back.Duration())
	}
}
