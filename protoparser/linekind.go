package protoparser

// LineKind classifies a single line of a .proto file. Only the kinds below
// are recognized; everything else is an OtherLine.
type LineKind int

const (
	// PackageLine is the `package foo.bar;` statement
	PackageLine LineKind = iota + 1
	// OptionLine is a file-level `option name = value;` statement
	OptionLine

	// Type declaration headers; only the name is picked up, and only
	// when the declaration is at the top level
	ServiceLine
	EnumLine
	MessageLine
	ExtendLine

	OtherLine
)

var lineKindToDescription = map[LineKind]string{
	PackageLine: "PackageLine",
	OptionLine:  "OptionLine",
	ServiceLine: "ServiceLine",
	EnumLine:    "EnumLine",
	MessageLine: "MessageLine",
	ExtendLine:  "ExtendLine",
	OtherLine:   "OtherLine",
}

func (k LineKind) GoString() string {
	return lineKindToDescription[k]
}

func (k LineKind) String() string {
	return lineKindToDescription[k]
}

// Keyword returns the keyword starting a declaration of the kind, and the
// empty string for kinds that are not declarations
func (k LineKind) Keyword() string {
	switch k {
	case ServiceLine:
		return "service"
	case EnumLine:
		return "enum"
	case MessageLine:
		return "message"
	case ExtendLine:
		return "extend"
	default:
		return ""
	}
}

// IsDeclaration returns true for the kinds that name a type declaration
func (k LineKind) IsDeclaration() bool {
	return k.Keyword() != ""
}

func init() {
	// make sure we panic if a description isn't declared
	for k := PackageLine; k <= OtherLine; k++ {
		if lineKindToDescription[k] == "" {
			panic("you have not updated lineKindToDescription")
		}
	}
}
