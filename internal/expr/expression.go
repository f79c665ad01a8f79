// Package expr implements the precedence-aware expression composer:
// parenthesization-minimal, purity-tracked textual expression trees,
// built bottom-up and immutable -- Extend returns a new Expression
// rather than mutating its receiver, preventing aliasing bugs where one
// consumer's edit would corrupt another's copy.
package expr

// Class identifies an expression's syntactic category, together with
// its precedence/associativity/purity.
type Class int

const (
	Identifier Class = iota
	Literal
	Keyword
	RegExpLiteral
	CallExpression
	MemberExpression
	NewExpression
	NumberLiteral
	NegativeNumberLiteral
	StringLiteral
	TemplateLiteral
	ObjectLiteral
	ArrayLiteral
	PostfixExpression
	UnaryExpression
	BinaryExpression
	TernaryExpression
	AssignmentExpression
	YieldExpression
	SpreadExpression
	CommaExpression
)

// Associativity is one of {none, left, right}.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

// Purity is one of {pure, effectful}: whether the expression may be
// observed as ordering-sensitive relative to other effects.
type Purity int

const (
	Pure Purity = iota
	Effectful
)

// classInfo is the static (precedence, associativity, purity) triple
// for one Class. Values are assigned at package initialization from
// this table rather than at runtime from a global counter.
type classInfo struct {
	precedence int
	assoc      Associativity
	purity     Purity
}

var classTable = map[Class]classInfo{
	Identifier:            {20, AssocNone, Pure},
	Literal:               {20, AssocNone, Pure},
	Keyword:               {20, AssocNone, Pure},
	RegExpLiteral:         {20, AssocNone, Effectful},
	CallExpression:        {19, AssocLeft, Effectful},
	MemberExpression:      {19, AssocLeft, Effectful},
	NewExpression:         {19, AssocNone, Effectful},
	NumberLiteral:         {17, AssocNone, Pure},
	NegativeNumberLiteral: {17, AssocNone, Pure},
	StringLiteral:         {17, AssocNone, Pure},
	TemplateLiteral:       {17, AssocNone, Effectful},
	ObjectLiteral:         {17, AssocNone, Effectful},
	ArrayLiteral:          {17, AssocNone, Effectful},
	PostfixExpression:     {16, AssocNone, Effectful},
	UnaryExpression:       {15, AssocRight, Effectful},
	BinaryExpression:      {14, AssocNone, Effectful},
	TernaryExpression:     {4, AssocNone, Effectful},
	AssignmentExpression:  {3, AssocNone, Effectful},
	YieldExpression:       {2, AssocRight, Effectful},
	SpreadExpression:      {2, AssocNone, Effectful},
	CommaExpression:       {1, AssocLeft, Effectful},
}

// Position is where a child expression is being composed into its
// parent: left-hand side or right-hand side.
type Position int

const (
	LHS Position = iota
	RHS
)

// Expression is an immutable value-like record.
type Expression struct {
	class      Class
	precedence int
	assoc      Associativity
	purity     Purity
	text       string
	subCount   int
}

// New creates an atom of the given class with initial text.
func New(class Class, initialText string) Expression {
	info := classTable[class]
	return Expression{
		class:      class,
		precedence: info.precedence,
		assoc:      info.assoc,
		purity:     info.purity,
		text:       initialText,
	}
}

// Class returns the expression's syntactic class.
func (e Expression) Class() Class { return e.class }

// Precedence returns the expression's binding strength (higher binds tighter).
func (e Expression) Precedence() int { return e.precedence }

// Purity returns the expression's current purity.
func (e Expression) Purity() Purity { return e.purity }

// IsEffectful reports whether the expression is effectful.
func (e Expression) IsEffectful() bool { return e.purity == Effectful }

// Text returns the expression's rendered textual form.
func (e Expression) Text() string { return e.text }

// SubCount returns the number of sub-expressions extended into this one so far.
func (e Expression) SubCount() int { return e.subCount }

// Extend appends literal text to the expression; sub-count is unchanged.
func (e Expression) Extend(suffix string) Expression {
	e.text += suffix
	return e
}

// ExtendExpr appends a child expression at the given position, wrapping
// it in parentheses when needed to preserve parse semantics, and
// combining purity (the result is effectful iff either side is).
func (e Expression) ExtendExpr(child Expression, pos Position) Expression {
	e.text += child.renderAt(e, pos)
	if child.purity == Effectful {
		e.purity = Effectful
	}
	e.subCount++
	return e
}

// renderAt returns child's text, parenthesized if composing it into
// parent at pos would otherwise re-parse to different semantics:
//
//	child.prec > parent.prec:  no parens
//	child.prec < parent.prec:  parens
//	child.prec == parent.prec: parens iff associativities disagree, or
//	  associativity is none, or (left and pos=rhs), or (right and pos=lhs)
func (child Expression) renderAt(parent Expression, pos Position) string {
	if child.precedence > parent.precedence {
		return child.text
	}
	if child.precedence < parent.precedence {
		return "(" + child.text + ")"
	}
	needsParens := child.assoc != parent.assoc ||
		child.assoc == AssocNone ||
		(child.assoc == AssocLeft && pos == RHS) ||
		(child.assoc == AssocRight && pos == LHS)
	if needsParens {
		return "(" + child.text + ")"
	}
	return child.text
}
