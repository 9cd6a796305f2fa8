package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// EscIdent is a backslash-escaped identifier; Text has the backslash removed.
	EscIdent

	// KwModule represents the 'module' keyword.
	KwModule // module
	KwEndModule
	KwInterface
	KwEndInterface
	KwMethod
	KwEndMethod
	KwRule
	KwEndRule
	KwTypedef
	KwStruct
	KwEnum
	KwUnion
	KwTagged
	KwImport
	KwExport
	KwPackage
	KwEndPackage
	KwFunction
	KwEndFunction
	KwInstance
	KwEndInstance
	KwDeriving
	KwProvisos
	KwReturn
	KwLet
	KwType
	KwNumeric

	// IntLit is an unsized decimal literal (42).
	IntLit
	// SizedLit is a based literal, optionally sized (8'hFF, 'b101, 'd3).
	SizedLit
	// StringLit represents a string literal token.
	StringLit

	// Hash represents '#'.
	Hash      // #
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Dot       // .
	Colon     // :
	Question  // ?
	Assign    // =
	Quote     // '
	// LArrow is the instantiation/bind arrow '<-'.
	LArrow // <-
	// LtEq doubles as the register write operator '<='.
	LtEq      // <=
	GtEq      // >=
	EqEq      // ==
	BangEq    // !=
	AttrOpen  // (*
	AttrClose // *)
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Lt        // <
	Gt        // >
	Shl       // <<
	Shr       // >>
	Amp       // &
	AndAnd    // &&
	Pipe      // |
	OrOr      // ||
	Caret     // ^
	Bang      // !
	Dollar    // $
	Tilde     // ~
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident", EscIdent: "EscIdent",
	KwModule: "KwModule", KwEndModule: "KwEndModule", KwInterface: "KwInterface",
	KwEndInterface: "KwEndInterface", KwMethod: "KwMethod", KwEndMethod: "KwEndMethod",
	KwRule: "KwRule", KwEndRule: "KwEndRule", KwTypedef: "KwTypedef", KwStruct: "KwStruct",
	KwEnum: "KwEnum", KwUnion: "KwUnion", KwTagged: "KwTagged", KwImport: "KwImport",
	KwExport: "KwExport", KwPackage: "KwPackage", KwEndPackage: "KwEndPackage",
	KwFunction: "KwFunction", KwEndFunction: "KwEndFunction", KwInstance: "KwInstance",
	KwEndInstance: "KwEndInstance", KwDeriving: "KwDeriving", KwProvisos: "KwProvisos",
	KwReturn: "KwReturn", KwLet: "KwLet", KwType: "KwType", KwNumeric: "KwNumeric",
	IntLit: "IntLit", SizedLit: "SizedLit", StringLit: "StringLit",
	Hash: "Hash", LParen: "LParen", RParen: "RParen", LBrace: "LBrace", RBrace: "RBrace",
	LBracket: "LBracket", RBracket: "RBracket", Comma: "Comma", Semicolon: "Semicolon",
	Dot: "Dot", Colon: "Colon", Question: "Question", Assign: "Assign", Quote: "Quote",
	LArrow: "LArrow", LtEq: "LtEq", GtEq: "GtEq", EqEq: "EqEq", BangEq: "BangEq",
	AttrOpen: "AttrOpen", AttrClose: "AttrClose", Plus: "Plus", Minus: "Minus", Star: "Star",
	Slash: "Slash", Percent: "Percent", Lt: "Lt", Gt: "Gt", Shl: "Shl", Shr: "Shr",
	Amp: "Amp", AndAnd: "AndAnd", Pipe: "Pipe", OrOr: "OrOr", Caret: "Caret", Bang: "Bang",
	Dollar: "Dollar", Tilde: "Tilde",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
