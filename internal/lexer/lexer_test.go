package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/source"
	"mslayout/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.bsv", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := lx.All()
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("%q: expected kind %v, got %v", input, expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("%q: expected text %q, got %q", input, expectedText, tok.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"foo", token.Ident, "foo"},
		{"_bar", token.Ident, "_bar"},
		{"mkTopLevel___", token.Ident, "mkTopLevel___"},
		{"Bit", token.Ident, "Bit"},
		{"x$y", token.Ident, "x$y"},
		{"$display", token.Ident, "$display"},
		{"module", token.KwModule, "module"},
		{"Module", token.Ident, "Module"},
		{"endinterface", token.KwEndInterface, "endinterface"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.text)
		})
	}
}

func TestEscapedIdentifiers(t *testing.T) {
	lx, rep := makeTestLexer(`module \mkFoo#(8) ( \Foo#(8) );`)
	toks := lx.All()
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.KwModule, "module"},
		{token.EscIdent, "mkFoo#(8)"},
		{token.LParen, "("},
		{token.EscIdent, "Foo#(8)"},
		{token.RParen, ")"},
		{token.Semicolon, ";"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %s", tokensToString(toks))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: got %v(%q) want %v(%q)", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
	// Span включает обратный слеш
	if sp := toks[1].Span; sp.End-sp.Start != uint32(len(`\mkFoo#(8)`)) {
		t.Errorf("escaped ident span %v does not cover backslash", sp)
	}
	if rep.HasErrors() {
		t.Errorf("unexpected errors: %v", rep.ErrorMessages())
	}
}

func TestEscapedIdentEmpty(t *testing.T) {
	lx, rep := makeTestLexer("\\ x")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexEmptyEscapedIdent {
		t.Fatalf("expected LexEmptyEscapedIdent, got %v", rep.ErrorMessages())
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"0", token.IntLit, "0"},
		{"1_000", token.IntLit, "1_000"},
		{"8'hFF", token.SizedLit, "8'hFF"},
		{"2'b01", token.SizedLit, "2'b01"},
		{"'h1F", token.SizedLit, "'h1F"},
		{"'d3", token.SizedLit, "'d3"},
		{"4'sd3", token.SizedLit, "4'sd3"},
		{"'0", token.SizedLit, "'0"},
		{"'1", token.SizedLit, "'1"},
		{"3'bx?z", token.SizedLit, "3'bx?z"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.text)
		})
	}
}

func TestNumberCastIsNotLiteral(t *testing.T) {
	// 8'(x): число, кавычка, скобки
	expectTokens(t, "8'(x)", []token.Kind{
		token.IntLit, token.Quote, token.LParen, token.Ident, token.RParen,
	})
	// Bit#(8)'(x) — приведение типа
	expectTokens(t, "Bit#(8)'(x)", []token.Kind{
		token.Ident, token.Hash, token.LParen, token.IntLit, token.RParen,
		token.Quote, token.LParen, token.Ident, token.RParen,
	})
}

func TestNumberMissingDigits(t *testing.T) {
	lx, rep := makeTestLexer("8'h;")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v(%q)", tok.Kind, tok.Text)
	}
	if !rep.HasErrors() || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Fatalf("expected LexBadNumber, got %v", rep.ErrorMessages())
	}
}

func TestStrings(t *testing.T) {
	expectSingleToken(t, `"BVI"`, token.StringLit, `"BVI"`)
	expectSingleToken(t, `"a\"b"`, token.StringLit, `"a\"b"`)

	lx, rep := makeTestLexer("\"open\nx")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid for newline in string, got %v", tok.Kind)
	}
	if !rep.HasErrors() {
		t.Fatalf("expected unterminated string error")
	}
}

func TestOperatorsAndPunct(t *testing.T) {
	expectTokens(t, "(* synthesize *) Reg#(Bit#(4)) r <- mkReg(0);", []token.Kind{
		token.AttrOpen, token.Ident, token.AttrClose,
		token.Ident, token.Hash, token.LParen, token.Ident, token.Hash, token.LParen, token.IntLit, token.RParen, token.RParen,
		token.Ident, token.LArrow, token.Ident, token.LParen, token.IntLit, token.RParen, token.Semicolon,
	})
	expectTokens(t, "a <= b == c != d >= e << f >> g && h || i ? j : k", []token.Kind{
		token.Ident, token.LtEq, token.Ident, token.EqEq, token.Ident, token.BangEq,
		token.Ident, token.GtEq, token.Ident, token.Shl, token.Ident, token.Shr,
		token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident,
		token.Question, token.Ident, token.Colon, token.Ident,
	})
	expectTokens(t, "x[3].y{}~^%/+-", []token.Kind{
		token.Ident, token.LBracket, token.IntLit, token.RBracket, token.Dot, token.Ident,
		token.LBrace, token.RBrace, token.Tilde, token.Caret, token.Percent, token.Slash,
		token.Plus, token.Minus,
	})
}

func TestUnknownCharacter(t *testing.T) {
	lx, rep := makeTestLexer("a ` b")
	toks := lx.All()
	if toks[1].Kind != token.Invalid {
		t.Fatalf("expected Invalid for backtick, got %v", toks[1].Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected one LexUnknownChar, got %v", rep.ErrorMessages())
	}
	if toks[2].Kind != token.Ident || toks[2].Text != "b" {
		t.Fatalf("lexer should recover after unknown char, got %v", tokensToString(toks))
	}
}

// ====== trivia ======

func TestTrivia(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []token.TriviaKind
	}{
		{"spaces", "  \t  foo", []token.TriviaKind{token.TriviaSpace}},
		{"newlines", "\n\n\nfoo", []token.TriviaKind{token.TriviaNewline}},
		{"crlf-leftover", "\r\nfoo", []token.TriviaKind{token.TriviaSpace, token.TriviaNewline}},
		{"line comment", "// note\nfoo", []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline}},
		{"block comment", "/* a /* b */foo", []token.TriviaKind{token.TriviaBlockComment}},
		{"mixed", "/* x */ // y\n  foo", []token.TriviaKind{
			token.TriviaBlockComment, token.TriviaSpace, token.TriviaLineComment,
			token.TriviaNewline, token.TriviaSpace,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != token.Ident || tok.Text != "foo" {
				t.Fatalf("expected Ident foo, got %v(%q)", tok.Kind, tok.Text)
			}
			if len(tok.Leading) != len(tt.kinds) {
				t.Fatalf("expected %d trivia, got %d", len(tt.kinds), len(tok.Leading))
			}
			for i, k := range tt.kinds {
				if tok.Leading[i].Kind != k {
					t.Errorf("trivia %d: expected %v, got %v", i, k, tok.Leading[i].Kind)
				}
			}
			if rep.HasErrors() {
				t.Errorf("unexpected errors: %v", rep.ErrorMessages())
			}
		})
	}
}

func TestTrivia_UnterminatedBlockComment(t *testing.T) {
	// Незакрытый комментарий съедает всё до конца файла
	lx, reporter := makeTestLexer("/* unterminated\nfoo")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Errorf("Expected EOF after unterminated block comment, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("Expected error report for unterminated block comment")
	}
}

func TestSlashIsOperatorWhenNotComment(t *testing.T) {
	expectTokens(t, "a / b", []token.Kind{token.Ident, token.Slash, token.Ident})
}

// ====== целые фрагменты msc ======

func TestLexer_InterfaceDecl(t *testing.T) {
	src := "interface Foo;\n    method Bit#(8) getX;\n    method Action put(Bool x);\nendinterface\n"
	toks := expectTokens(t, src, []token.Kind{
		token.KwInterface, token.Ident, token.Semicolon,
		token.KwMethod, token.Ident, token.Hash, token.LParen, token.IntLit, token.RParen, token.Ident, token.Semicolon,
		token.KwMethod, token.Ident, token.Ident, token.LParen, token.Ident, token.Ident, token.RParen, token.Semicolon,
		token.KwEndInterface,
	})
	if !toks[3].HasSpaceBefore() {
		t.Errorf("method should carry leading trivia")
	}
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Text != "a" || p2.Text != "a" {
		t.Fatalf("Peek must not consume: %q %q", p1.Text, p2.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek: %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next: %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected sticky EOF, got %v", n.Kind)
		}
	}
}

func TestLexer_EmptyAndWhitespace(t *testing.T) {
	for _, in := range []string{"", "   \n\t\n", "// only comment"} {
		lx, _ := makeTestLexer(in)
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Errorf("%q: expected EOF, got %v", in, tok.Kind)
		}
	}
}
