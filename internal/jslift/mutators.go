package jslift

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
)

//go:embed assets/explore.js
var exploreScaffold string

//go:embed assets/probe.js
var probeScaffold string

//go:embed assets/fixup.js
var fixupScaffold string

// mutatorScaffold pairs one runtime-assisted mutator opcode with the
// embedded JS source that implements it and the top-level function name
// call sites invoke.
type mutatorScaffold struct {
	source       string
	functionName string
}

var mutatorScaffolds = map[fil.Opcode]mutatorScaffold{
	fil.OpExplore: {source: exploreScaffold, functionName: "explore"},
	fil.OpProbe:   {source: probeScaffold, functionName: "probe"},
	fil.OpFixup:   {source: fixupScaffold, functionName: "fixup"},
}

// emitScaffoldOnce prepends scaffold's source ahead of the first use of
// its opcode in this lift; subsequent calls are no-ops.
func (l *Lifter) emitScaffoldOnce(name string, scaffold mutatorScaffold) {
	if l.scaffoldsEmitted[name] {
		return
	}
	l.scaffoldsEmitted[name] = true
	l.prelude.WriteString(scaffold.source)
	l.prelude.WriteByte('\n')
}

// handleMutator compiles explore/probe/fixup to a call into the
// matching scaffold function, with the fixed argument shape
// (instruction-id, value, this, [extra-args], optional-seed).
func (l *Lifter) handleMutator(in fil.Instruction) error {
	scaffold, ok := mutatorScaffolds[in.Opcode]
	if !ok {
		return l.unhandledOpcode(in)
	}
	l.emitScaffoldOnce(scaffold.functionName, scaffold)

	mc := in.Operands.(fil.MutatorCall)
	if len(in.Inputs) == 0 {
		return l.unhandledOpcode(in)
	}
	value := l.operand(in.Inputs[0]).Text()
	this := l.cfg.GlobalObjectIdentifier
	if len(in.Inputs) > 1 {
		this = l.operand(in.Inputs[1]).Text()
	}

	args := []string{strconv.Quote(mc.InstructionID), value, this}
	args = append(args, mc.ExtraArgs...)
	if mc.Seed != nil {
		args = append(args, strconv.FormatInt(*mc.Seed, 10))
	}

	call := scaffold.functionName + "(" + strings.Join(args, ", ") + ")"
	if len(in.Outputs) == 0 {
		l.emitExprStatement(expr.New(expr.CallExpression, call))
		return nil
	}
	l.define(in.Output(), in.Index, expr.New(expr.CallExpression, call))
	return nil
}
