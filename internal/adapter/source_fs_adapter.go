// Package adapter contains filesystem and persistence adapters for the
// resew CLI.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/resew-dev/resew/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer
// relies on when scanning and rewriting user projects. It hides direct `os`
// access so the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects candidate files under the given roots. Roots accept the
	// dir/... suffix for recursive scanning. Files whose path matches one
	// of the exclude regexes are dropped; when exts is non-empty only
	// files with one of those extensions are kept.
	Get(roots []m.Path, exclude []string, exts []string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory itself.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (SHA-256) for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFileWithBackup writes the original bytes of path to a .bak
	// sibling and only then overwrites path with content. The overwrite
	// never happens if the backup write fails.
	WriteFileWithBackup(path m.Path, content []byte) error
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain
// layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter implementation.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects candidate files for the provided roots.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, exclude []string, exts []string) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	excludeREs, err := compilePatterns(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := a.collect(rootPath, excludeREs, exts, seen, &sources); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			return a.collect(path, excludeREs, exts, seen, &sources)
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

func (a *LocalSourceFSAdapter) collect(path string, exclude []*regexp.Regexp, exts []string, seen map[string]struct{}, sources *[]m.Source) error {
	if !matchesExt(path, exts) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	for _, re := range exclude {
		if re.MatchString(absPath) || re.MatchString(path) {
			return nil
		}
	}

	if _, dup := seen[absPath]; dup {
		return nil
	}

	hash, err := a.HashFile(m.Path(absPath))
	if err != nil {
		// Unreadable files are skipped, not fatal.
		return nil //nolint:nilerr
	}

	seen[absPath] = struct{}{}
	*sources = append(*sources, m.Source{Origin: m.Path(absPath), Hash: hash})

	return nil
}

// Walk iterates over files under root, optionally descending into
// subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFileWithBackup backs the original file up to path.bak before
// overwriting it with content. File mode is preserved from the original.
func (a *LocalSourceFSAdapter) WriteFileWithBackup(path m.Path, content []byte) error {
	pathStr := string(path)

	info, err := os.Stat(pathStr)
	if err != nil {
		return fmt.Errorf("stat before overwrite: %w", err)
	}

	original, err := os.ReadFile(pathStr)
	if err != nil {
		return fmt.Errorf("read before overwrite: %w", err)
	}

	if err := os.WriteFile(pathStr+".bak", original, info.Mode().Perm()); err != nil {
		return fmt.Errorf("backup write failed, leaving %s untouched: %w", pathStr, err)
	}

	return os.WriteFile(pathStr, content, info.Mode().Perm())
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		res = append(res, re)
	}

	return res, nil
}

func matchesExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}

	ext := filepath.Ext(path)

	for _, e := range exts {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}

		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}
