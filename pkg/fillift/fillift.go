// Package fillift is the public facade of the lifting subsystem: one
// entry point per output format (lifted JavaScript, IL text, Wasm
// bytes), configured via functional options the way pkg/dwscript
// configures its engine (dwscript.New(dwscript.WithTypeCheck(false))).
package fillift

import (
	"bytes"

	"github.com/cwbudde/fillift/internal/defuse"
	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/ildump"
	"github.com/cwbudde/fillift/internal/jslift"
	"github.com/cwbudde/fillift/internal/typer"
	"github.com/cwbudde/fillift/internal/wasmlift"
)

// WasmResult is the output of LiftWasm: the assembled .wasm byte
// stream plus the JS-side variables the module imports, in import
// order.
type WasmResult struct {
	Bytes             []byte
	ImportedVariables []fil.Variable
}

// Lifter is the configured facade: construct one with New and reuse it
// across any number of LiftProgram/LiftCode/LiftWasm/DumpIL calls --
// unlike the internal per-call Lifter types, this facade value holds
// only configuration, not in-progress lift state.
type Lifter struct {
	options                jslift.Options
	globalObjectIdentifier string
	prefix, suffix         string
	inliner                expr.Inliner
	typerInfo              typer.Info
}

// Option configures a Lifter at construction time.
type Option func(*Lifter)

// New builds a Lifter from the given options; the zero configuration
// lifts with every ambient flag off, "this" as the global object
// identifier, and no prefix/suffix.
func New(opts ...Option) *Lifter {
	l := &Lifter{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithComments toggles preserving per-instruction Comment text in the
// lifted output.
func WithComments(enabled bool) Option {
	return func(l *Lifter) { l.setFlag(jslift.IncludeComments, enabled) }
}

// WithMinify toggles compact (no indentation/blank lines) output.
func WithMinify(enabled bool) Option {
	return func(l *Lifter) { l.setFlag(jslift.Minify, enabled) }
}

// WithDumpTypes toggles emitting Typer-derived type annotations as
// comments alongside lifted declarations.
func WithDumpTypes(enabled bool) Option {
	return func(l *Lifter) { l.setFlag(jslift.DumpTypes, enabled) }
}

// WithCollectTypes toggles whether LiftCodeWithTypes also returns the
// Typer-derived static type recorded for every variable bound during
// the lift.
func WithCollectTypes(enabled bool) Option {
	return func(l *Lifter) { l.setFlag(jslift.CollectTypes, enabled) }
}

func (l *Lifter) setFlag(flag jslift.Options, enabled bool) {
	if enabled {
		l.options |= flag
	} else {
		l.options &^= flag
	}
}

// WithGlobalObjectIdentifier overrides the host global object
// identifier used in emitted JavaScript (default "this").
func WithGlobalObjectIdentifier(id string) Option {
	return func(l *Lifter) { l.globalObjectIdentifier = id }
}

// WithPrefix sets text emitted before the lifted program body.
func WithPrefix(prefix string) Option {
	return func(l *Lifter) { l.prefix = prefix }
}

// WithSuffix sets text emitted after the lifted program body.
func WithSuffix(suffix string) Option {
	return func(l *Lifter) { l.suffix = suffix }
}

// WithInliner overrides the expression-inlining policy (default
// expr.Richer{}), for callers exercising the older onlyFollowing-style
// policy in tests.
func WithInliner(inliner expr.Inliner) Option {
	return func(l *Lifter) { l.inliner = inliner }
}

// WithTyper supplies the Typer boundary consulted when a lifted
// program embeds a Wasm module: only needed if LiftProgram/LiftCode
// will encounter a begin-wasm-module range, since that range is
// delegated whole to internal/wasmlift.
func WithTyper(info typer.Info) Option {
	return func(l *Lifter) { l.typerInfo = info }
}

func (l *Lifter) jsConfig() jslift.Config {
	return jslift.Config{
		Options:                l.options,
		GlobalObjectIdentifier: l.globalObjectIdentifier,
		Prefix:                 l.prefix,
		Suffix:                 l.suffix,
		Inliner:                l.inliner,
		TyperInfo:              l.typerInfo,
	}
}

// LiftProgram lifts a complete program to JavaScript, bracketed by the
// configured prefix/suffix.
func (l *Lifter) LiftProgram(p *fil.Program) (string, error) {
	cfg := l.jsConfig()
	if p.GlobalObjectIdentifier != "" {
		cfg.GlobalObjectIdentifier = p.GlobalObjectIdentifier
	}
	return jslift.New(cfg, p.Code, defuse.NewLinearScan(p.Code)).LiftProgram()
}

// LiftCode lifts a bare instruction sequence to JavaScript, with no
// prefix/suffix bracketing.
func (l *Lifter) LiftCode(c fil.Code) (string, error) {
	return jslift.New(l.jsConfig(), c, defuse.NewLinearScan(c)).LiftCode()
}

// LiftCodeWithTypes lifts c exactly like LiftCode, additionally
// returning the Typer-derived static type recorded for every bound
// variable. The returned map is nil unless WithCollectTypes(true) was
// set; WithTyper must also be set or every entry is typer.Unknown.
func (l *Lifter) LiftCodeWithTypes(c fil.Code) (string, map[fil.Variable]typer.StaticType, error) {
	il := jslift.New(l.jsConfig(), c, defuse.NewLinearScan(c))
	out, err := il.LiftCode()
	if err != nil {
		return "", nil, err
	}
	return out, il.CollectedTypes(), nil
}

// LiftWasm compiles the Wasm-opcode range in c to a standalone .wasm
// byte stream, using info to resolve the external types of imported
// variables.
func (l *Lifter) LiftWasm(c fil.Code, info typer.Info) (*WasmResult, error) {
	wasmBytes, imports, err := wasmlift.New(info).Lift(c)
	if err != nil {
		return nil, err
	}
	vars := make([]fil.Variable, len(imports))
	for i, im := range imports {
		vars[i] = im.Variable
	}
	return &WasmResult{Bytes: wasmBytes, ImportedVariables: vars}, nil
}

// DumpIL renders p's instruction stream as flat IL text via
// internal/ildump, ignoring JavaScript-lifting-only options (minify,
// comments) since the dump format is fixed.
func (l *Lifter) DumpIL(p *fil.Program) (string, error) {
	var buf bytes.Buffer
	d := ildump.NewDumper(p.Code, &buf)
	if err := d.Dump(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
