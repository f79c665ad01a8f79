// Package jslift implements the instruction-dispatched JavaScript
// lifter: a structured traversal of
// the FIL instruction stream that emits syntactically valid JavaScript
// for every FIL opcode, maintaining indentation, scope, and
// variable-naming invariants, and orchestrating the Explore/Probe/Fixup
// runtime-assisted mutator scaffolds via fixed string helpers.
package jslift

import (
	"fmt"
	"strings"

	"github.com/cwbudde/fillift/internal/defuse"
	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
	"github.com/cwbudde/fillift/internal/scriptwriter"
	"github.com/cwbudde/fillift/internal/typer"
	"github.com/cwbudde/fillift/internal/wasmlift"
)

// Config bundles the facade-visible configuration for one lift.
type Config struct {
	Options                Options
	GlobalObjectIdentifier string // default "this"
	Prefix                 string
	Suffix                 string
	Inliner                expr.Inliner // default Richer{}
	TyperInfo              typer.Info   // required only if the program embeds Wasm
}

// Lifter holds the mutable state of one JS lifting run. A Lifter is not
// safe for concurrent or repeat use across programs; callers construct
// a fresh one per lift, mirroring the single-threaded, straight-line
// computation model lifting is expected to follow.
type Lifter struct {
	cfg     Config
	writer  *scriptwriter.Writer
	da      defuse.Analysis
	code    fil.Code
	exprs   map[fil.Variable]expr.Expression

	codeStringDepth int

	scratchStack  []*scriptwriter.Writer
	forStack      []forLoopFrame
	funcKindStack []fil.FunctionKind

	scaffoldsEmitted map[string]bool
	prelude          strings.Builder

	// collectedTypes accumulates the Typer-derived static type of every
	// variable bound during this lift; non-nil only when the
	// CollectTypes option is set.
	collectedTypes map[fil.Variable]typer.StaticType

	// wasmSkipUntil is the code index (exclusive) up to which dispatch
	// should skip instructions: set past a begin-wasm-module/
	// end-wasm-module range once the embedded block has been delegated
	// to wasmlift, since those instructions were already consumed whole.
	wasmSkipUntil int

	nextDeclKind string // "let" vs "const" is irrelevant here: always emits "let"
}

// New constructs a Lifter for one lift of code, wired to a def-use
// analysis over the same code.
func New(cfg Config, code fil.Code, da defuse.Analysis) *Lifter {
	if cfg.GlobalObjectIdentifier == "" {
		cfg.GlobalObjectIdentifier = "this"
	}
	if cfg.Inliner == nil {
		cfg.Inliner = expr.Richer{}
	}
	l := &Lifter{
		cfg:  cfg,
		code: code,
		da:   da,
		exprs: make(map[fil.Variable]expr.Expression),
		scaffoldsEmitted: make(map[string]bool),
		writer: scriptwriter.New(scriptwriter.Config{
			Minify: cfg.Options.has(Minify),
		}),
	}
	if cfg.Options.has(CollectTypes) {
		l.collectedTypes = make(map[fil.Variable]typer.StaticType)
	}
	return l
}

// CollectedTypes returns the Typer-derived static type recorded for
// each variable bound during this lift. It is nil unless the
// CollectTypes option was set on Config.
func (l *Lifter) CollectedTypes() map[fil.Variable]typer.StaticType {
	return l.collectedTypes
}

// LiftCode lifts a sub-program: no prefix/suffix.
func (l *Lifter) LiftCode() (string, error) {
	includeComments := l.cfg.Options.has(IncludeComments)
	for i := range l.code {
		in := l.code[i]
		if includeComments && in.Comment != "" && in.Index >= l.wasmSkipUntil {
			l.writer.EmitComment(in.Comment)
		}
		if err := l.dispatch(in); err != nil {
			return "", fmt.Errorf("jslift: instruction %d (%s): %w", in.Index, in.Opcode, err)
		}
	}
	if l.writer.IndentLevel() != 0 {
		return "", filerr.NewInCode(filerr.Fatal, l.code, len(l.code)-1,
			"unbalanced indentation at end of program (level %d)", l.writer.IndentLevel())
	}
	return l.prelude.String() + l.writer.String(), nil
}

// LiftProgram lifts a complete program, bracketing it with the
// configured prefix/suffix.
func (l *Lifter) LiftProgram() (string, error) {
	body, err := l.LiftCode()
	if err != nil {
		return "", err
	}
	return l.cfg.Prefix + body + l.cfg.Suffix, nil
}

// operand resolves input variable v to rendered text for composing into
// a new parent expression. If v has a tracked producer expression it is
// consumed: erased from the
// map unless it is a bound Identifier (which remains safely reusable).
// If absent, a plain Identifier("v<n>") is used.
func (l *Lifter) operand(v fil.Variable) expr.Expression {
	e, ok := l.exprs[v]
	if !ok {
		return expr.New(expr.Identifier, v.String())
	}
	if e.Class() != expr.Identifier {
		delete(l.exprs, v)
	}
	return e
}

// define records the expression produced by instruction in for its
// output variable v, deciding whether to inline it (kept unbound for a
// later single use) or bind it to a named temporary immediately.
func (l *Lifter) define(v fil.Variable, defIndex int, e expr.Expression) {
	l.recordType(v)
	if l.shouldInline(e, v, defIndex) {
		l.exprs[v] = e
		return
	}
	l.bind(v, e)
}

// recordType looks up v's static type through the configured Typer
// boundary and stashes it in collectedTypes, when the CollectTypes
// option requested that bookkeeping. Inlined variables are recorded
// here too, not just bound ones, since collection reflects every value
// the program computed regardless of how it was rendered.
func (l *Lifter) recordType(v fil.Variable) {
	if l.collectedTypes == nil || l.cfg.TyperInfo == nil || v == fil.Invalid {
		return
	}
	l.collectedTypes[v] = l.cfg.TyperInfo.TypeOf(v)
}

// bind unconditionally emits a declaration statement for v and replaces
// its tracked expression with a plain (always-safe-to-reuse) Identifier.
// When DumpTypes is set, the declaration is followed by a comment
// naming v's Typer-derived static type.
func (l *Lifter) bind(v fil.Variable, e expr.Expression) {
	l.writer.EmitLine(fmt.Sprintf("let %s = %s;", v, e.Text()))
	if l.cfg.Options.has(DumpTypes) && l.cfg.TyperInfo != nil {
		l.writer.EmitComment(v.String() + ": " + l.cfg.TyperInfo.TypeOf(v).String())
	}
	l.exprs[v] = expr.New(expr.Identifier, v.String())
}

// shouldInline implements the combined rule under the newer purity +
// usage-count model (the repo's resolution of Open Question 1): inline
// iff the Inliner policy accepts the expression's shape AND it has
// exactly one use AND (the expression is pure, or no effectful producer
// runs between its definition and that single use).
func (l *Lifter) shouldInline(e expr.Expression, v fil.Variable, defIndex int) bool {
	if !l.cfg.Inliner.ShouldInline(e) {
		return false
	}
	uses := l.da.Uses(v)
	if len(uses) != 1 {
		return false
	}
	if e.IsEffectful() && l.da.IsEffectfulBetween(defIndex, uses[0]) {
		return false
	}
	return true
}

// emitExprStatement renders expression e as a bare statement line
// ("<text>;"), used for instructions whose value is discarded (e.g. a
// call made purely for its side effect).
func (l *Lifter) emitExprStatement(e expr.Expression) {
	l.writer.EmitLine(e.Text() + ";")
}

// newWasmLifter constructs a fresh delegate Wasm binary lifter for each
// embedded begin-wasm-module/end-wasm-module range.
func (l *Lifter) newWasmLifter() *wasmlift.Lifter {
	return wasmlift.New(l.cfg.TyperInfo)
}
