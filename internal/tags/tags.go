// Package tags writes ID3v2.4 metadata to fetched mp3 files.
package tags

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bogem/id3v2/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jaa/yoink/internal/engine"
)

// CoverSource fetches front cover art for a release. A missing cover is
// reported as (nil, nil), not an error.
type CoverSource interface {
	GetCoverArt(ctx context.Context, releaseID string) ([]byte, error)
}

// LyricsSource fetches plain-text lyrics for an artist/title pair.
type LyricsSource interface {
	Get(ctx context.Context, artist, title string) (string, error)
}

// Service tags files with metadata from a fetch job, optionally enriched
// with cover art and lyrics fetched over the network. It implements the
// engine's Tagger interface.
type Service struct {
	Cover       CoverSource
	Lyrics      LyricsSource
	EmbedCover  bool
	EmbedLyrics bool
}

// TagFile rewrites the ID3 tag of the file at path from the job metadata.
// Cover art and lyrics lookups run concurrently; their failures degrade the
// tag rather than failing the call.
func (s *Service) TagFile(ctx context.Context, path string, job engine.Job) error {
	var (
		cover     []byte
		lyricText string
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.EmbedCover && s.Cover != nil && job.ReleaseMBID != "" {
		g.Go(func() error {
			data, err := s.Cover.GetCoverArt(gctx, job.ReleaseMBID)
			if err != nil {
				return nil
			}
			cover = data
			return nil
		})
	}
	if s.EmbedLyrics && s.Lyrics != nil && job.Artist != "" && job.Title != "" {
		g.Go(func() error {
			text, err := s.Lyrics.Get(gctx, job.Artist, job.Title)
			if err != nil {
				// missing lyrics just means no USLT frame
				return nil
			}
			lyricText = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.DeleteAllFrames()

	tag.SetTitle(job.Title)
	if job.Artist != "" {
		tag.SetArtist(job.Artist)
		tag.AddTextFrame(tag.CommonID("Band/Orchestra/Accompaniment"), id3v2.EncodingUTF8, job.Artist)
	}
	if job.Album != "" {
		tag.SetAlbum(job.Album)
	}
	if frame := TrackFrame(job.TrackNumber, job.TotalTracks); frame != "" {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, frame)
	}
	if year := YearFromDate(job.Year); year != "" {
		tag.AddTextFrame(tag.CommonID("Recording time"), id3v2.EncodingUTF8, year)
	}

	if len(cover) > 0 {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    http.DetectContentType(cover),
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     cover,
		})
	}
	if lyricText != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: job.Title,
			Lyrics:            lyricText,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("saving tag for %s: %w", path, err)
	}
	return nil
}

// TrackFrame formats a TRCK value, "3/23" when the total is known and "3"
// otherwise. A zero track number produces no frame.
func TrackFrame(number, total int) string {
	if number <= 0 {
		return ""
	}
	if total > 0 {
		return fmt.Sprintf("%d/%d", number, total)
	}
	return fmt.Sprintf("%d", number)
}

// YearFromDate extracts the year from a MusicBrainz release date, which may
// be "2002-02-18", "2002-02" or just "2002".
func YearFromDate(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}
