package config

const (
	defaultCoursesDir   = "~/courses"
	defaultLogDir       = "~/.local/share/coursecast/logs"
	defaultRegistryPath = "~/.local/share/coursecast/registry.db"
	defaultAudioFormat  = "mp3"
	defaultAudioBitrate = "64k"
	defaultWhisperModel = "large-v3-turbo"
	defaultLanguage     = "pt"
	defaultLLMBaseURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel     = "deepseek/deepseek-chat"
	defaultLLMTimeout   = 120
	defaultTTSVoice     = "pt-BR-AntonioNeural"
	defaultTTSRate      = "+0%"
	defaultDriveTimeout = 600
	defaultGitHubBranch = "main"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CoursesDir:   defaultCoursesDir,
			LogDir:       defaultLogDir,
			RegistryPath: defaultRegistryPath,
		},
		Audio: Audio{
			Format:  defaultAudioFormat,
			Bitrate: defaultAudioBitrate,
		},
		Transcription: Transcription{
			Model:    defaultWhisperModel,
			Language: defaultLanguage,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		TTS: TTS{
			Voice: defaultTTSVoice,
			Rate:  defaultTTSRate,
		},
		Drive: Drive{
			TimeoutSeconds: defaultDriveTimeout,
		},
		GitHub: GitHub{
			Branch: defaultGitHubBranch,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
