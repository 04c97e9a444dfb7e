package protoparser

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// File is the scan of one .proto file found in a file system
type File struct {
	// Path is the slash separated path within its file system
	Path string
	// Desc identifies the file among several file systems, e.g. `fs[1]:foo/bar.proto`
	Desc   string
	Hash   [32]byte
	Result ScanResult
	// Err is set if the file could not be read; Result is empty then
	Err error
}

// ScanOptions controls which files ScanFilesystems picks up and how
type ScanOptions struct {
	// Exclude holds glob patterns (with `/` as separator) for paths to skip
	Exclude []string
	// Concurrency bounds the number of files scanned at the same time
	Concurrency int
}

type candidate struct {
	fsys fs.FS
	path string
	desc string
}

// ScanFilesystems finds all .proto files in the given file systems and scans
// them concurrently. Files are returned in the order fs.WalkDir visits them,
// file system by file system, so output is stable.
//
// A file that cannot be read does not stop the scan; see File.Err. The
// returned error is for walk failures, invalid exclude patterns, and
// the same file showing up in two file systems.
func ScanFilesystems(ctx context.Context, fslst []fs.FS, opts ScanOptions) ([]File, error) {
	excludes, err := compileGlobs(opts.Exclude)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for fidx, fsys := range fslst {
		// WalkDir is in lexical order according to docs
		err = fs.WalkDir(fsys, ".",
			func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				// Skip over any hidden directories; in particular .git
				if (strings.HasPrefix(path, ".") && path != ".") || strings.Contains(path, "/.") {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if matchesAny(excludes, path) {
					if d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.IsDir() || !strings.HasSuffix(path, Extension) {
					return nil
				}
				candidates = append(candidates, candidate{
					fsys: fsys,
					path: path,
					desc: fmt.Sprintf("fs[%d]:%s", fidx, path),
				})
				return nil
			})
		if err != nil {
			return nil, err
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	// every goroutine writes its own slot only
	files := make([]File, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = scanFile(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// protect against the same file system being passed twice. Identical
	// contents under different paths are fine; the path decides what is
	// generated from the file.
	type fileKey struct {
		path string
		hash [32]byte
	}
	seen := make(map[fileKey]string)
	for _, f := range files {
		if f.Err != nil {
			continue
		}
		key := fileKey{path: f.Path, hash: f.Hash}
		if existing, ok := seen[key]; ok {
			return nil, fmt.Errorf("file %s has exact same contents as %s (possibly in different filesystems)",
				f.Desc, existing)
		}
		seen[key] = f.Desc
	}

	return files, nil
}

func scanFile(c candidate) File {
	result := File{Path: c.path, Desc: c.desc}

	buf, err := fs.ReadFile(c.fsys, c.path)
	if err != nil {
		result.Err = &FileReadError{Path: c.desc, Err: err}
		return result
	}
	result.Hash = sha256.Sum256(buf)

	// reading from memory; cannot fail
	result.Result, _ = ScanReader(bytes.NewReader(buf), c.path)
	return result
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var result []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		result = append(result, g)
	}
	return result, nil
}

func matchesAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
