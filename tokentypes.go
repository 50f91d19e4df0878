package lox

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	// Single-character tokens.
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	PrintKeyword
	Return
	Super
	This
	True
	Var
	While

	Eof
)

var tokenNames = map[TokenType]string{
	LeftParen: "LeftParen", RightParen: "RightParen", LeftBrace: "LeftBrace", RightBrace: "RightBrace",
	Comma: "Comma", Dot: "Dot", Minus: "Minus", Plus: "Plus", Semicolon: "Semicolon", Slash: "Slash", Star: "Star",
	Bang: "Bang", BangEqual: "BangEqual", Equal: "Equal", EqualEqual: "EqualEqual",
	Greater: "Greater", GreaterEqual: "GreaterEqual", Less: "Less", LessEqual: "LessEqual",
	Identifier: "Identifier", String: "String", Number: "Number",
	And: "And", Class: "Class", Else: "Else", False: "False", Fun: "Fun", For: "For", If: "If",
	Nil: "Nil", Or: "Or", PrintKeyword: "Print", Return: "Return", Super: "Super", This: "This",
	True: "True", Var: "Var", While: "While", Eof: "Eof",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "Unknown"
}
