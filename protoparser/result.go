package protoparser

import (
	"path"
	"sort"
	"strings"
)

// ScanResult is the metadata extracted from one .proto file.
type ScanResult struct {
	// Package is the java_package option if present, otherwise the
	// package statement, otherwise empty
	Package        string `yaml:"package"`
	OuterClassName string `yaml:"outerClassName"`
	MultipleFiles  bool   `yaml:"multipleFiles"`

	// Names of top-level declarations; nested ones are not recorded
	Services NameSet `yaml:"services"`
	Messages NameSet `yaml:"messages"`
	Enums    NameSet `yaml:"enums"`
	Extends  NameSet `yaml:"extends"`
}

func (r ScanResult) namesFor(kind LineKind) NameSet {
	switch kind {
	case ServiceLine:
		return r.Services
	case EnumLine:
		return r.Enums
	case MessageLine:
		return r.Messages
	case ExtendLine:
		return r.Extends
	default:
		panic("not a declaration: " + kind.String())
	}
}

// Empty returns true if no top-level declarations were found
func (r ScanResult) Empty() bool {
	return r.Services.Len() == 0 && r.Messages.Len() == 0 && r.Enums.Len() == 0 && r.Extends.Len() == 0
}

// QualifiedName returns the fully qualified Java name that typeName, a
// top-level declaration, is generated as. Without java_multiple_files all
// types are nested in the outer class.
func (r ScanResult) QualifiedName(typeName string) string {
	prefix := r.Package
	if !r.MultipleFiles {
		prefix = joinQualified(prefix, r.OuterClassName)
	}
	return joinQualified(prefix, typeName)
}

func joinQualified(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// JavaGenfiles lists the Java source files that protoc generates for the
// file, relative to the output root, sorted.
func (r ScanResult) JavaGenfiles() []string {
	basepath := strings.ReplaceAll(r.Package, ".", "/")

	classnames := NewNameSet(r.OuterClassName)
	if r.MultipleFiles {
		for _, set := range []NameSet{r.Enums, r.Messages, r.Services} {
			for name := range set {
				classnames.Add(name)
			}
		}
		for name := range r.Messages {
			classnames.Add(name + "OrBuilder")
		}
	}

	var result []string
	for _, classname := range classnames.Sorted() {
		result = append(result, path.Join(basepath, classname+".java"))
	}
	return result
}

// NameSet is an unordered set of type names
type NameSet map[string]struct{}

// NewNameSet returns a set holding names
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s NameSet) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order
func (s NameSet) Sorted() []string {
	result := make([]string, 0, len(s))
	for name := range s {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// MarshalYAML writes the set as a sorted sequence
func (s NameSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}
