package protoparser

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vippsas/protocode/protoparser/internal/casing"
)

// Extension is the conventional suffix of schema files
const Extension = ".proto"

// We don't tokenize the file; every line is matched on its own against a
// handful of patterns. This gets the top-level names right for the way
// .proto files are written in practice, but comments, string literals and
// statements spanning several lines are not understood.
var (
	packageRegex = regexp.MustCompile(`^\s*package\s+([^;]+)\s*;\s*$`)
	optionRegex  = regexp.MustCompile(`^\s*option\s+([^ =]+)\s*=\s*([^\s]+)\s*;\s*$`)

	// checked in this order; the first one matching wins
	declarationRegexes = []struct {
		kind  LineKind
		regex *regexp.Regexp
	}{
		{ServiceLine, regexp.MustCompile(`^\s*(service)\s+([^\s{]+).*`)},
		{EnumLine, regexp.MustCompile(`^\s*(enum)\s+([^\s{]+).*`)},
		{MessageLine, regexp.MustCompile(`^\s*(message)\s+([^\s{]+).*`)},
		{ExtendLine, regexp.MustCompile(`^\s*(extend)\s+([^\s{]+).*`)},
	}

	protoFilenameRegex = regexp.MustCompile(`(?s)^(.*)\.proto$`)
)

// Declarations are only recorded while the brace depth, including the
// braces on the header line itself, is below this
const maxTypeDepth = 2

const (
	javaPackageOption        = "java_package"
	javaOuterClassnameOption = "java_outer_classname"
	javaMultipleFilesOption  = "java_multiple_files"
)

// Line is the classification of a single line of input
type Line struct {
	Kind LineKind
	// Name is the package for a PackageLine, the option name for an
	// OptionLine and the type name for a declaration
	Name string
	// Value is the option value, with one pair of surrounding double
	// quotes removed
	Value string
	// BraceDelta is the count of '{' minus the count of '}'. It is not
	// computed for package and option statements.
	BraceDelta int
}

// ClassifyLine matches a line against the package, option and declaration
// patterns, in that order. A line matching none of them is an OtherLine.
func ClassifyLine(line string) Line {
	if m := packageRegex.FindStringSubmatch(line); m != nil {
		return Line{Kind: PackageLine, Name: m[1]}
	}
	if m := optionRegex.FindStringSubmatch(line); m != nil {
		return Line{Kind: OptionLine, Name: m[1], Value: unquote(m[2])}
	}

	result := Line{
		Kind:       OtherLine,
		BraceDelta: strings.Count(line, "{") - strings.Count(line, "}"),
	}
	for _, d := range declarationRegexes {
		if m := d.regex.FindStringSubmatch(line); m != nil {
			result.Kind = d.kind
			result.Name = m[2]
			break
		}
	}
	return result
}

// unquote strips one leading and one trailing double quote; no escape
// sequences are interpreted
func unquote(value string) string {
	value = strings.TrimPrefix(value, `"`)
	return strings.TrimSuffix(value, `"`)
}

// Scanner extracts the metadata of a single .proto file. It is bound to the
// file at construction but does not read it until Scan is called.
type Scanner struct {
	path   string
	source string
}

// NewScanner creates a Scanner for the file at path. source is the path of
// the file relative to its source root; its base name decides the default
// outer class name.
func NewScanner(path, source string) *Scanner {
	return &Scanner{path: path, source: source}
}

// Path is the OS path the scanner reads from
func (s *Scanner) Path() string {
	return s.path
}

// Source is the path relative to the source root
func (s *Scanner) Source() string {
	return s.source
}

// Scan reads the bound file and returns its metadata. Errors opening or
// reading the file are returned as *FileReadError.
func (s *Scanner) Scan() (ScanResult, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return ScanResult{}, &FileReadError{Path: s.path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	result, err := ScanReader(f, s.source)
	if err != nil {
		return ScanResult{}, &FileReadError{Path: s.path, Err: err}
	}
	return result, nil
}

// Filename returns the base name of the bound path without the .proto
// extension. It does not require Scan to have been called.
func (s *Scanner) Filename() (string, error) {
	m := protoFilenameRegex.FindStringSubmatch(filepath.Base(s.path))
	if m == nil {
		return "", &InvalidFilenameError{Path: s.path}
	}
	return m[1], nil
}

// DefaultOuterClassName is the outer class name used when a file has no
// java_outer_classname option: the camel cased base name of source, with
// the .proto extension removed
func DefaultOuterClassName(source string) string {
	// not filepath.Base, which turns "" into "." and drops trailing slashes
	source = filepath.ToSlash(source)
	name := source[strings.LastIndex(source, "/")+1:]
	return casing.CamelCase(strings.TrimSuffix(name, Extension))
}

// ScanReader scans .proto content from r. source is used as in NewScanner.
// The error returned is the one from r, unwrapped.
func ScanReader(r io.Reader, source string) (ScanResult, error) {
	state := newScanState(source)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			state.feed(trimNewline(line))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ScanResult{}, err
		}
	}
	return state.finish(), nil
}

// ScanString is a helper to scan .proto content held in a string
func ScanString(source, input string) ScanResult {
	result, err := ScanReader(strings.NewReader(input), source)
	if err != nil {
		// strings.Reader never fails
		panic(err)
	}
	return result
}

func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

type scanState struct {
	result    ScanResult
	typeDepth int

	// the package statement and the java_package option are both kept
	// until the end; the option wins no matter which came first
	defaultPackage  *string
	packageOverride *string
}

func newScanState(source string) *scanState {
	return &scanState{
		result: ScanResult{
			OuterClassName: DefaultOuterClassName(source),
			Services:       NewNameSet(),
			Messages:       NewNameSet(),
			Enums:          NewNameSet(),
			Extends:        NewNameSet(),
		},
	}
}

func (s *scanState) feed(text string) {
	line := ClassifyLine(text)
	switch line.Kind {
	case PackageLine:
		s.defaultPackage = &line.Name
		return
	case OptionLine:
		s.option(line.Name, line.Value)
		return
	}

	// the depth is bumped before looking at the declaration, so a header
	// with its opening brace on the same line counts one level deeper
	s.typeDepth += line.BraceDelta
	if !line.Kind.IsDeclaration() || s.typeDepth >= maxTypeDepth {
		return
	}
	s.result.namesFor(line.Kind).Add(line.Name)
}

func (s *scanState) option(name, value string) {
	switch name {
	case javaPackageOption:
		s.packageOverride = &value
	case javaOuterClassnameOption:
		s.result.OuterClassName = value
	case javaMultipleFilesOption:
		s.result.MultipleFiles = value == "true"
	}
}

func (s *scanState) finish() ScanResult {
	switch {
	case s.packageOverride != nil:
		s.result.Package = *s.packageOverride
	case s.defaultPackage != nil:
		s.result.Package = *s.defaultPackage
	}
	return s.result
}
