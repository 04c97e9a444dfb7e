package protocode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/protocode/protoparser"
)

// Codebase is the scan of all .proto files in a set of file systems
type Codebase struct {
	ScannedFiles []string // mainly for use in error messages etc
	Files        []protoparser.File
	Fingerprint  string
}

// Options that affect file discovery etc; pass an empty struct to get
// default options.
type Options struct {
	// glob patterns, with `/` as separator, of paths to leave out
	Exclude []string

	// max number of files scanned at the same time; 0 means the default
	Concurrency int

	Logger logrus.FieldLogger

	// if this is set, files that could not be read are logged and skipped
	// rather than failing Include
	PartialScanResults bool
}

func (opts Options) logger() logrus.FieldLogger {
	if opts.Logger != nil {
		return opts.Logger
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Include scans the .proto files of the given file systems, typically
// embedded with the `embed` go feature or from os.DirFS.
func Include(opts Options, fsys ...fs.FS) (Codebase, error) {
	return IncludeContext(context.Background(), opts, fsys...)
}

func IncludeContext(ctx context.Context, opts Options, fsys ...fs.FS) (result Codebase, err error) {
	logger := opts.logger()

	files, err := protoparser.ScanFilesystems(ctx, fsys, protoparser.ScanOptions{
		Exclude:     opts.Exclude,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return Codebase{}, err
	}

	var scanErrors ScanErrors
	for _, f := range files {
		if f.Err != nil {
			scanErrors.Errors = append(scanErrors.Errors, ScanError{File: f.Desc, Err: f.Err})
			logger.WithField("path", f.Desc).WithError(f.Err).Warn("could not scan file")
			continue
		}
		logger.WithFields(logrus.Fields{
			"path":     f.Desc,
			"package":  f.Result.Package,
			"services": f.Result.Services.Len(),
			"messages": f.Result.Messages.Len(),
			"enums":    f.Result.Enums.Len(),
			"extends":  f.Result.Extends.Len(),
		}).Debug("scanned file")
		result.ScannedFiles = append(result.ScannedFiles, f.Desc)
		result.Files = append(result.Files, f)
	}
	if len(scanErrors.Errors) > 0 && !opts.PartialScanResults {
		return Codebase{}, scanErrors
	}

	result.Fingerprint = FingerprintFromHash(result.Files)
	return result, nil
}

func MustInclude(opts Options, fsys ...fs.FS) Codebase {
	result, err := Include(opts, fsys...)
	if err != nil {
		panic(err)
	}
	return result
}

// FingerprintFromHash combines the content hashes of the files into a short
// identifier of the codebase; it changes whenever any file changes
func FingerprintFromHash(files []protoparser.File) string {
	hasher := sha256.New()
	for _, f := range files {
		hasher.Write([]byte(f.Path + "\n"))
		hasher.Write(f.Hash[:])
	}
	return hex.EncodeToString(hasher.Sum(nil)[:6])
}

func (c Codebase) Empty() bool {
	for _, f := range c.Files {
		if !f.Result.Empty() {
			return false
		}
	}
	return true
}

// Genfiles lists the Java source files generated for the whole codebase
func (c Codebase) Genfiles() []string {
	all := protoparser.NewNameSet()
	for _, f := range c.Files {
		for _, genfile := range f.Result.JavaGenfiles() {
			all.Add(genfile)
		}
	}
	return all.Sorted()
}

// Declaration is a top-level type declared somewhere in the codebase
type Declaration struct {
	File          string
	Kind          protoparser.LineKind
	Name          string
	QualifiedName string
}

// Declarations lists all top-level declarations, ordered by file and then
// by kind and name
func (c Codebase) Declarations() []Declaration {
	var result []Declaration
	for _, f := range c.Files {
		var decls []Declaration
		for kind, names := range map[protoparser.LineKind]protoparser.NameSet{
			protoparser.ServiceLine: f.Result.Services,
			protoparser.EnumLine:    f.Result.Enums,
			protoparser.MessageLine: f.Result.Messages,
			protoparser.ExtendLine:  f.Result.Extends,
		} {
			for name := range names {
				decls = append(decls, Declaration{
					File:          f.Path,
					Kind:          kind,
					Name:          name,
					QualifiedName: f.Result.QualifiedName(name),
				})
			}
		}
		sort.Slice(decls, func(i, j int) bool {
			if decls[i].Kind != decls[j].Kind {
				return decls[i].Kind < decls[j].Kind
			}
			return decls[i].Name < decls[j].Name
		})
		result = append(result, decls...)
	}
	return result
}

// Lookup finds the file declaring the top-level type typeName. Extensions
// are not types and are not considered.
func (c Codebase) Lookup(typeName string) (protoparser.File, bool) {
	for _, f := range c.Files {
		r := f.Result
		if r.Services.Contains(typeName) || r.Messages.Contains(typeName) || r.Enums.Contains(typeName) {
			return f, true
		}
	}
	return protoparser.File{}, false
}
