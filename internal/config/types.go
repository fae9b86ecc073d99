package config

type Config struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Tools    Tools    `yaml:"tools"`
}

type Defaults struct {
	MusicDir              string `yaml:"music_dir"`
	MaxKbps               int    `yaml:"max_kbps"`
	SearchLimit           int    `yaml:"search_limit"`
	CommandTimeoutSeconds int    `yaml:"command_timeout_seconds"`
	ContinueOnError       bool   `yaml:"continue_on_error"`
	Organize              bool   `yaml:"organize"`
	EmbedCover            bool   `yaml:"embed_cover"`
	EmbedLyrics           bool   `yaml:"embed_lyrics"`
	CookiesFromBrowser    string `yaml:"cookies_from_browser,omitempty"`
}

type Tools struct {
	YTDLPBin  string `yaml:"ytdlp_bin,omitempty"`
	FFmpegBin string `yaml:"ffmpeg_bin,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: 1,
		Defaults: Defaults{
			MusicDir:              defaultMusicDir(),
			MaxKbps:               0,
			SearchLimit:           40,
			CommandTimeoutSeconds: 900,
			ContinueOnError:       true,
			Organize:              true,
			EmbedCover:            true,
			EmbedLyrics:           true,
		},
		Tools: Tools{},
	}
}
