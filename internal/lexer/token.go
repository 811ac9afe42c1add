package lexer

import "fmt"

// Tok enumerates every token kind the parser's control layer consumes.
// Mirrors the original Move-IR syntax lexer's Tok enum (see
// original_source/.../syntax.rs), grounded on the teacher's TOKEN-kind
// enumeration style (compiler/internal/frontend/lexer/tokenizer.go).
type Tok int

const (
	EOF Tok = iota

	// Literal-carrying kinds (Content() holds the raw lexeme).
	NameValue
	NameBeginTyValue // a Name fused with its opening '<', e.g. "Foo<"
	DotNameValue     // a Name '.' Name pair fused into one token
	AccountAddressValue
	U8Value
	U64Value
	U128Value
	ByteArrayValue

	// Structural punctuation.
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Period
	Underscore
	Equal

	// Operators (see spec.md §4.2 precedence table).
	EqualEqualGreater // ==>
	PipePipe          // ||
	AmpAmp            // &&
	EqualEqual        // ==
	ExclaimEqual      // !=
	Less              // <
	Greater           // >
	LessEqual         // <=
	GreaterEqual      // >=
	Pipe              // |
	Caret             // ^
	Amp               // &
	AmpMut            // &mut
	LessLess          // <<
	GreaterGreater    // >>
	Plus
	Minus
	Star
	Slash
	Percent
	Exclaim // !

	// Keywords.
	Module
	Main
	Import
	As
	Public
	Native
	Let
	If
	Else
	While
	Loop
	Return
	Continue
	Break
	Abort
	Assert
	Struct
	Resource
	Unrestricted
	Acquires
	Move
	Copy
	Freeze
	Exists
	BorrowGlobal
	BorrowGlobalMut
	MoveFrom
	MoveToSender
	GetTxnSender
	ToU8
	ToU64
	ToU128
	True
	False

	// Primitive type keywords.
	Address
	U8
	U64
	U128
	Bool
	Bytearray

	// Spec-language keywords.
	Requires
	Ensures
	AbortsIf
	SucceedsIf
	Invariant
	Synthetic
	Old
	Global
	GlobalExists
	SpecReturn // RET
	TxnSender
)

var names = map[Tok]string{
	EOF:                 "EOF",
	NameValue:            "Name",
	NameBeginTyValue:      "NameBeginTy",
	DotNameValue:          "DotName",
	AccountAddressValue:   "AccountAddress",
	U8Value:               "U8Value",
	U64Value:              "U64Value",
	U128Value:             "U128Value",
	ByteArrayValue:        "ByteArrayValue",
	LBrace:                "{",
	RBrace:                "}",
	LParen:                "(",
	RParen:                ")",
	LBracket:              "[",
	RBracket:              "]",
	Comma:                 ",",
	Semicolon:             ";",
	Colon:                 ":",
	Period:                ".",
	Underscore:            "_",
	Equal:                 "=",
	EqualEqualGreater:     "==>",
	PipePipe:              "||",
	AmpAmp:                "&&",
	EqualEqual:            "==",
	ExclaimEqual:          "!=",
	Less:                  "<",
	Greater:               ">",
	LessEqual:             "<=",
	GreaterEqual:          ">=",
	Pipe:                  "|",
	Caret:                 "^",
	Amp:                   "&",
	AmpMut:                "&mut",
	LessLess:              "<<",
	GreaterGreater:        ">>",
	Plus:                  "+",
	Minus:                 "-",
	Star:                  "*",
	Slash:                 "/",
	Percent:               "%",
	Exclaim:               "!",
	Module:                "module",
	Main:                  "main",
	Import:                "import",
	As:                    "as",
	Public:                "public",
	Native:                "native",
	Let:                   "let",
	If:                    "if",
	Else:                  "else",
	While:                 "while",
	Loop:                  "loop",
	Return:                "return",
	Continue:              "continue",
	Break:                 "break",
	Abort:                 "abort",
	Assert:                "assert",
	Struct:                "struct",
	Resource:              "resource",
	Unrestricted:          "unrestricted",
	Acquires:              "acquires",
	Move:                  "move",
	Copy:                  "copy",
	Freeze:                "freeze",
	Exists:                "exists",
	BorrowGlobal:          "borrow_global",
	BorrowGlobalMut:       "borrow_global_mut",
	MoveFrom:              "move_from",
	MoveToSender:          "move_to_sender",
	GetTxnSender:          "get_txn_sender",
	ToU8:                  "to_u8",
	ToU64:                 "to_u64",
	ToU128:                "to_u128",
	True:                  "true",
	False:                 "false",
	Address:               "address",
	U8:                    "u8",
	U64:                   "u64",
	U128:                  "u128",
	Bool:                  "bool",
	Bytearray:             "bytearray",
	Requires:              "requires",
	Ensures:               "ensures",
	AbortsIf:              "aborts_if",
	SucceedsIf:            "succeeds_if",
	Invariant:             "invariant",
	Synthetic:             "synthetic",
	Old:                   "old",
	Global:                "global",
	GlobalExists:          "global_exists",
	SpecReturn:            "RET",
	TxnSender:             "txn_sender",
}

func (t Tok) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("Tok(%d)", int(t))
}

// keywords maps every reserved word (anything that is not a structural
// symbol) to its token kind. Built once from `names` so the table can
// never drift from the String() rendering above.
var keywords map[string]Tok

func init() {
	keywords = make(map[string]Tok)
	for tok, text := range names {
		if tok >= Module && tok <= TxnSender {
			keywords[text] = tok
		}
	}
}

// IsSpecDirective reports whether tok begins a top-level spec condition
// clause (requires/ensures/aborts_if/succeeds_if), per spec.md §4.6.
func (t Tok) IsSpecDirective() bool {
	switch t {
	case Requires, Ensures, AbortsIf, SucceedsIf:
		return true
	default:
		return false
	}
}

// Token is one lexed unit: its kind, its source span, and its raw text.
type Token struct {
	Kind    Tok
	Content string
	Start   int
	End     int
}
