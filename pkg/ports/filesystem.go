package ports

import "io/fs"

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)

	// Stat returns file info, following symbolic links.
	Stat(path string) (fs.FileInfo, error)

	// Abs returns an absolute representation of path.
	Abs(path string) (string, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
