package vidutil

import (
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the still-image suffixes ListImages keeps when no
// others are given. Matching is exact and case-sensitive.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}

// ImagePath is one still-image file of a sequence.
type ImagePath struct {
	// Path is absolute.
	Path string
	// Name is the file name as listed in its directory.
	Name string
}

// ListImages returns the still images directly inside dir, ordered by a
// case-insensitive comparison of their absolute paths.
//
// An entry is kept when its name does not start with ".", it is a regular
// file (symlinks are followed) and its suffix is one of extensions. With no
// extensions, DefaultExtensions apply. Ordering is plain lexicographic:
// "im10.png" sorts before "im2.png".
func (s *Source) ListImages(dir string, extensions ...string) ([]ImagePath, error) {
	const op = "list images"

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	info, err := s.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, opError(op, dir, ErrNotADirectory, err)
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, opError(op, dir, ErrNotADirectory, err)
	}

	var images []ImagePath
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !slices.Contains(extensions, suffix(name)) {
			continue
		}

		full := filepath.Join(dir, name)
		fi, err := s.fs.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		abs, err := s.fs.Abs(full)
		if err != nil {
			return nil, opError(op, full, ErrDecode, err)
		}
		images = append(images, ImagePath{Path: abs, Name: name})
	}

	slices.SortStableFunc(images, func(a, b ImagePath) int {
		return strings.Compare(strings.ToLower(a.Path), strings.ToLower(b.Path))
	})

	s.log.Debug("Listed %d images in %s", len(images), dir)
	return images, nil
}

// suffix returns the final dot-extension of a file name, or "" when the
// name has no dot, ends with a dot, or only has a leading dot.
func suffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
