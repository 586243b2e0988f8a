package app

import "io/fs"

// FileSystem is the read-only filesystem surface traversal depends on.
// The OS implementation lives in internal/infra/fs; tests may substitute
// their own.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}
