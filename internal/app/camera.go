package app

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"tripscan/internal/domain"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// collectCameraMetadata enumerates every file beneath cameraDir at any
// depth, classifying by lowercased extension. Both result lists hold
// absolute resolved paths in lexicographic order. Unreadable subtrees are
// skipped, not fatal.
func collectCameraMetadata(fsys FileSystem, cameraDir string) domain.CameraMetadata {
	meta := domain.CameraMetadata{
		ImageFiles: []string{},
		CSVFiles:   []string{},
	}
	_ = fsys.WalkDir(cameraDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		resolved := resolveBestEffort(path)
		switch ext := strings.ToLower(filepath.Ext(d.Name())); {
		case imageExtensions[ext]:
			meta.ImageFiles = append(meta.ImageFiles, resolved)
		case ext == ".csv":
			meta.CSVFiles = append(meta.CSVFiles, resolved)
		}
		return nil
	})
	sort.Strings(meta.ImageFiles)
	sort.Strings(meta.CSVFiles)
	return meta
}
