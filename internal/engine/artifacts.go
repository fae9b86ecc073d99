package engine

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Partial files yt-dlp leaves behind when a download is aborted mid-stream.
var artifactSuffixes = []string{".part", ".ytdl", ".temp.mp4"}

func snapshotArtifacts(dir string) (map[string]struct{}, error) {
	seen := map[string]struct{}{}

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return seen, nil
		}
		return nil, err
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		for _, suffix := range artifactSuffixes {
			if strings.HasSuffix(name, suffix) {
				seen[path] = struct{}{}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// sweepNewArtifacts removes partial files that appeared after baseline was
// taken and returns their paths sorted.
func sweepNewArtifacts(dir string, baseline map[string]struct{}) ([]string, error) {
	current, err := snapshotArtifacts(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0)
	for path := range current {
		if _, existed := baseline[path]; existed {
			continue
		}
		if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			return removed, removeErr
		}
		removed = append(removed, path)
	}
	slices.Sort(removed)
	return removed, nil
}
