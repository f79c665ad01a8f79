package expr

// Inliner decides, independent of any usage-count information, whether
// an expression of a given shape is a candidate for inlining at all.
// Implementations must be idempotent and side-effect-free. The
// usage-count half of the decision (how many uses, and whether an
// effectful producer runs between definition and use) lives outside
// this interface, in internal/jslift, which combines ShouldInline with
// internal/defuse.
type Inliner interface {
	ShouldInline(e Expression) bool
}

// InlineNothing never inlines.
type InlineNothing struct{}

func (InlineNothing) ShouldInline(Expression) bool { return false }

// InlineOnlyLiterals always-inlines the minimum always-inline set:
// Identifier, NumberLiteral, NegativeNumberLiteral, StringLiteral,
// Keyword.
type InlineOnlyLiterals struct{}

func (InlineOnlyLiterals) ShouldInline(e Expression) bool {
	switch e.Class() {
	case Identifier, NumberLiteral, NegativeNumberLiteral, StringLiteral, Keyword:
		return true
	default:
		return false
	}
}

// Richer is a fuller should-inline policy: expressions of every class
// are inline candidates, effectful ones included (internal/jslift still
// keeps an effectful one bound when an effectful producer runs between
// its definition and its single use). RegExpLiteral -- syntactically
// atomic but effectful -- is never a candidate, since each evaluation
// yields a fresh object.
type Richer struct{}

func (Richer) ShouldInline(e Expression) bool {
	return e.Class() != RegExpLiteral
}
