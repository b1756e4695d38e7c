package alignment

// Config captures runtime settings for WhisperX alignment.
type Config struct {
	// Language is the ISO 639-1 code used to pick the wav2vec2 model.
	Language string
	// CUDAEnabled runs alignment on the GPU.
	CUDAEnabled bool
	// AlignModel overrides WhisperX's default model for Language.
	AlignModel string
	// FFmpegBinary and UVXBinary name the external tools.
	FFmpegBinary string
	UVXBinary    string
	// WorkDir holds per-call scratch directories. Empty uses the OS temp dir.
	WorkDir string
}

// WhisperX invocation constants.
const (
	DefaultLanguage = "en"
	PypiIndexURL    = "https://pypi.org/simple"
	CUDAIndexURL    = "https://download.pytorch.org/whl/cu128"
	whisperXPackage = "whisperx"
	cpuDevice       = "cpu"
	cudaDevice      = "cuda"
	sampleRate      = "16000"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)
