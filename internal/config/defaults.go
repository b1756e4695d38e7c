package config

const (
	defaultConfigPath          = "~/.config/quotemash/config.toml"
	defaultDataDir             = "~/.local/share/quotemash"
	defaultDataDirEnv          = "QUOTEMASH_DATA_DIR"
	defaultLogDirName          = "logs"
	defaultAudioDirName        = "audios"
	defaultWorkDirName         = "work"
	defaultDatabaseName        = "corpus.db"
	defaultTieBreak            = "input"
	defaultMatcherWorkers      = 1
	defaultAlignmentLanguage   = "en"
	defaultFFmpegBinary        = "ffmpeg"
	defaultUVXBinary           = "uvx"
	defaultPaddingMS           = 2000
	defaultAccompanimentGainDB = -15
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// DefaultExcludedKeywords lists the dub languages whose quotes are left out of
// matching. They are matched against the audio URL.
var DefaultExcludedKeywords = []string{
	"French", "Spanish", "German", "Russian", "Chinese", "Dutch",
	"Swedish", "Egyptian", "Arabic", "Japanese", "Samoan", "Korean",
}

// Default returns a Config populated with repository defaults. Directory
// fields left empty are derived from paths.data_dir during normalization.
func Default() Config {
	return Config{
		Corpus: Corpus{
			ExcludedKeywords: append([]string(nil), DefaultExcludedKeywords...),
		},
		Matcher: Matcher{
			TieBreak: defaultTieBreak,
			Workers:  defaultMatcherWorkers,
		},
		Alignment: Alignment{
			Enabled:      true,
			Language:     defaultAlignmentLanguage,
			FFmpegBinary: defaultFFmpegBinary,
			UVXBinary:    defaultUVXBinary,
		},
		Compose: Compose{
			PaddingMS:           defaultPaddingMS,
			AccompanimentGainDB: defaultAccompanimentGainDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
