package config

import "fmt"

func DefaultTemplate() string {
	return fmt.Sprintf(`version: 1
defaults:
  music_dir: %q
  # 0 means best available audio bitrate; set e.g. 192 to cap it.
  max_kbps: 0
  search_limit: %d
  continue_on_error: true
  command_timeout_seconds: %d
  organize: true
  embed_cover: true
  embed_lyrics: true
  # cookies_from_browser: "firefox"
tools:
  # ytdlp_bin: "/usr/local/bin/yt-dlp"
  # ffmpeg_bin: "/usr/local/bin/ffmpeg"
`, defaultMusicDir(), 40, 900)
}
