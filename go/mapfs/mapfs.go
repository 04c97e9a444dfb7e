// Package mapfs exposes a set of files scattered over the OS file system
// as a single fs.FS, so that they can be scanned like a directory tree.
package mapfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MapFS maps slash separated names within the file system to paths on disk
type MapFS map[string]string

var _ fs.FS = (*MapFS)(nil)

// Add makes the file at the OS path available under its path relative to
// the working directory. Files outside the working directory, or inside a
// hidden directory, are placed at the root under their base name instead;
// if that name is taken they go in a numbered subdirectory. Add returns the
// name that was used.
func (m MapFS) Add(osPath string) string {
	name := logicalName(osPath)
	base := name
	for i := 1; ; i++ {
		existing, ok := m[name]
		if !ok || existing == osPath {
			break
		}
		name = strconv.Itoa(i) + "/" + base
	}
	m[name] = osPath
	return name
}

func logicalName(osPath string) string {
	base := filepath.Base(osPath)
	wd, err := os.Getwd()
	if err != nil {
		return base
	}
	abs, err := filepath.Abs(osPath)
	if err != nil {
		return base
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || !filepath.IsLocal(rel) {
		return base
	}
	rel = filepath.ToSlash(rel)
	for _, elem := range strings.Split(path.Dir(rel), "/") {
		if strings.HasPrefix(elem, ".") && elem != "." {
			return base
		}
	}
	return rel
}

func (m MapFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if osPath, ok := m[name]; ok {
		return os.Open(osPath)
	}

	entries, err := m.children(name)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, name)
	}
	return &virtualDir{name: path.Base(name), entries: entries}, nil
}

// children lists the entries directly below the directory name, or nil if
// no file lives under it
func (m MapFS) children(name string) ([]fs.DirEntry, error) {
	prefix := name + "/"
	if name == "." {
		prefix = ""
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry
	for key, osPath := range m {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		child, _, isDir := strings.Cut(rest, "/")
		if seen[child] {
			continue
		}
		seen[child] = true

		if isDir {
			entries = append(entries, fileDirEntry{name: child, info: dirInfo{name: child, mode: fs.ModeDir}})
			continue
		}
		info, err := os.Stat(osPath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileDirEntry{name: child, info: info})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	if name == "." && entries == nil {
		// the root always exists
		entries = []fs.DirEntry{}
	}
	return entries, nil
}

// virtualDir implements fs.File + ReadDirFile
type virtualDir struct {
	name    string
	entries []fs.DirEntry
	pos     int
}

func (d *virtualDir) Stat() (fs.FileInfo, error) {
	return dirInfo{name: d.name, mode: fs.ModeDir}, nil
}

func (d *virtualDir) Read([]byte) (int, error) {
	return 0, io.EOF // directories have no data
}

func (d *virtualDir) Close() error {
	return nil
}

func (d *virtualDir) ReadDir(n int) ([]fs.DirEntry, error) {
	if d.pos >= len(d.entries) {
		if n <= 0 {
			return nil, nil
		}
		return nil, io.EOF
	}
	if n <= 0 || d.pos+n > len(d.entries) {
		n = len(d.entries) - d.pos
	}
	entries := d.entries[d.pos : d.pos+n]
	d.pos += n
	return entries, nil
}

// fileDirEntry implements fs.DirEntry
type fileDirEntry struct {
	name string
	info fs.FileInfo
}

func (e fileDirEntry) Name() string               { return e.name }
func (e fileDirEntry) IsDir() bool                { return e.info.IsDir() }
func (e fileDirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e fileDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// dirInfo is a simple FileInfo for the synthesized directories
type dirInfo struct {
	name string
	mode fs.FileMode
}

func (d dirInfo) Name() string       { return d.name }
func (d dirInfo) Size() int64        { return 0 }
func (d dirInfo) Mode() fs.FileMode  { return d.mode }
func (d dirInfo) ModTime() time.Time { return time.Time{} }
func (d dirInfo) IsDir() bool        { return d.mode.IsDir() }
func (d dirInfo) Sys() interface{}   { return nil }
