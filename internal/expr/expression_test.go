package expr

import "testing"

// Scenario S1 building block: two pure literals compose into a binary
// expression with no parens needed on either side.
func TestExtendExprNoParensSamePrecedence(t *testing.T) {
	lhs := New(NumberLiteral, "1")
	rhs := New(NumberLiteral, "2")
	e := New(BinaryExpression, "")
	e = e.ExtendExpr(lhs, LHS)
	e = e.Extend(" + ")
	e = e.ExtendExpr(rhs, RHS)
	if got, want := e.Text(), "1 + 2"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Scenario S2: 1 * (2 + 3) -- the lower-precedence addition on the RHS
// of a higher-precedence multiplication needs parens.
func TestExtendExprParensLowerPrecedenceChild(t *testing.T) {
	inner := New(BinaryExpression, "")
	inner = inner.ExtendExpr(New(NumberLiteral, "2"), LHS)
	inner = inner.Extend(" + ")
	inner = inner.ExtendExpr(New(NumberLiteral, "3"), RHS)

	outer := New(BinaryExpression, "")
	outer = outer.ExtendExpr(New(NumberLiteral, "1"), LHS)
	outer = outer.Extend(" * ")
	outer = outer.ExtendExpr(inner, RHS)

	if got, want := outer.Text(), "1 * (2 + 3)"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestExtendExprHigherPrecedenceChildNeedsNoParens(t *testing.T) {
	call := New(CallExpression, "f()")
	outer := New(BinaryExpression, "")
	outer = outer.ExtendExpr(call, LHS)
	outer = outer.Extend(" + ")
	outer = outer.ExtendExpr(New(NumberLiteral, "1"), RHS)
	if got, want := outer.Text(), "f() + 1"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Equal precedence, left-associative (comma): the RHS position always
// needs parens to prevent re-association.
func TestExtendExprLeftAssocRHSNeedsParens(t *testing.T) {
	rhs := New(CommaExpression, "")
	rhs = rhs.ExtendExpr(New(Identifier, "b"), LHS)
	rhs = rhs.Extend(", ")
	rhs = rhs.ExtendExpr(New(Identifier, "c"), RHS)

	outer := New(CommaExpression, "")
	outer = outer.ExtendExpr(New(Identifier, "a"), LHS)
	outer = outer.Extend(", ")
	outer = outer.ExtendExpr(rhs, RHS)

	if got, want := outer.Text(), "a, (b, c)"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Equal precedence, left-associative (comma): the LHS position needs no
// parens. BinaryExpression has no associativity, so it cannot serve here.
func TestExtendExprLeftAssocLHSNoParens(t *testing.T) {
	lhs := New(CommaExpression, "")
	lhs = lhs.ExtendExpr(New(Identifier, "a"), LHS)
	lhs = lhs.Extend(", ")
	lhs = lhs.ExtendExpr(New(Identifier, "b"), RHS)

	outer := New(CommaExpression, "")
	outer = outer.ExtendExpr(lhs, LHS)
	outer = outer.Extend(", ")
	outer = outer.ExtendExpr(New(Identifier, "c"), RHS)

	if got, want := outer.Text(), "a, b, c"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Right-associative (e.g. unary): the LHS position needs parens.
func TestExtendExprRightAssocLHSNeedsParens(t *testing.T) {
	inner := New(UnaryExpression, "-")
	inner = inner.ExtendExpr(New(Identifier, "x"), RHS)

	outer := New(UnaryExpression, "-")
	outer = outer.ExtendExpr(inner, LHS)
	if got, want := outer.Text(), "-(-x)"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

// Invariant I-inline: composing any effectful part yields an effectful
// whole, even when the other part is pure.
func TestPurityClosure(t *testing.T) {
	e := New(BinaryExpression, "")
	e = e.ExtendExpr(New(NumberLiteral, "1"), LHS)
	e = e.Extend(" + ")
	e = e.ExtendExpr(New(CallExpression, "f()"), RHS)
	if !e.IsEffectful() {
		t.Errorf("expected composite with an effectful part to be effectful")
	}
}

// Every part, the parent's own class included, is pure here. A
// BinaryExpression parent would not do: that class is itself effectful.
func TestPurityAllPureStaysPure(t *testing.T) {
	e := New(Literal, "")
	e = e.ExtendExpr(New(NumberLiteral, "1"), LHS)
	e = e.Extend(" + ")
	e = e.ExtendExpr(New(NumberLiteral, "2"), RHS)
	if e.IsEffectful() {
		t.Errorf("expected all-pure composite to remain pure")
	}
}

func TestSubCountIncrementsOnlyOnExprExtend(t *testing.T) {
	e := New(BinaryExpression, "")
	e = e.Extend(" prefix ")
	if e.SubCount() != 0 {
		t.Fatalf("Extend(text) should not change sub-count, got %d", e.SubCount())
	}
	e = e.ExtendExpr(New(Identifier, "x"), LHS)
	if e.SubCount() != 1 {
		t.Fatalf("ExtendExpr should increment sub-count, got %d", e.SubCount())
	}
}

func TestInlinersAgreeOnMinimumAlwaysInlineSet(t *testing.T) {
	always := []Class{Identifier, NumberLiteral, NegativeNumberLiteral, StringLiteral, Keyword}
	for _, c := range always {
		e := New(c, "x")
		if !(InlineOnlyLiterals{}).ShouldInline(e) {
			t.Errorf("InlineOnlyLiterals should inline class %v", c)
		}
		if !(Richer{}).ShouldInline(e) {
			t.Errorf("Richer should inline class %v", c)
		}
	}
}

func TestInlineNothingNeverInlines(t *testing.T) {
	if (InlineNothing{}).ShouldInline(New(Identifier, "x")) {
		t.Errorf("InlineNothing must never inline")
	}
}

func TestRicherNeverInlinesRegExp(t *testing.T) {
	if (Richer{}).ShouldInline(New(RegExpLiteral, "/x/")) {
		t.Errorf("Richer must not inline RegExpLiteral: each evaluation yields a fresh object")
	}
}
