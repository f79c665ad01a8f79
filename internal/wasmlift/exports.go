package wasmlift

import (
	"strconv"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// ExportKind discriminates the Export union's non-import variants.
// Spec's "import" variant is represented here as the IsImport flag on
// an otherwise ordinary Export rather than as a fifth kind, which makes
// the never-nest-an-import invariant trivially true by construction
// (there is nowhere for a second flag to nest).
type ExportKind int

const (
	ExportFunction ExportKind = iota
	ExportTable
	ExportMemory
	ExportGlobal
	ExportTag
	ExportSuspendingObject
)

// binary export-section kind byte, per the export-kind byte table.
const (
	exportKindFunction byte = 0x00
	exportKindTable    byte = 0x01
	exportKindMemory   byte = 0x02
	exportKindGlobal   byte = 0x03
	exportKindTag      byte = 0x04
)

// Export is one entry the module exposes at its boundary: a defined
// function/table/memory/global/tag/suspending-object, or an import of
// one (IsImport true). analyzeImports, which creates the module's
// exports, leaves Signature nil.
type Export struct {
	Kind           ExportKind
	IsImport       bool
	Index          int // module-local index within its kind's index space
	SourceVariable fil.Variable
	Signature      *wasmtypes.Signature
}

func (e Export) byteKind() byte {
	switch e.Kind {
	case ExportTable:
		return exportKindTable
	case ExportMemory:
		return exportKindMemory
	case ExportGlobal:
		return exportKindGlobal
	case ExportTag:
		return exportKindTag
	default:
		return exportKindFunction
	}
}

// name renders the binary export-section name for e, following the
// fixed {prefix}{index} scheme ("w" functions, "wg" globals, "wt"
// tables, "wm" memories, "wex" tags; imports get an extra leading "i").
func (e Export) name() string {
	prefix := ""
	if e.IsImport {
		prefix = "i"
	}
	switch e.Kind {
	case ExportGlobal:
		prefix += "wg"
	case ExportTable:
		prefix += "wt"
	case ExportMemory:
		prefix += "wm"
	case ExportTag:
		prefix += "wex"
	default:
		prefix += "w"
	}
	return prefix + strconv.Itoa(e.Index)
}
