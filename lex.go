package oxide

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	pos  int
}

func (t lexToken) String() string {
	return t.text + "@" + strconv.Itoa(t.pos)
}

// delimiters separate tokens. The lexer discards them.
const delimiters = "(),"

type lexer struct {
	src  string
	off  int
	buf  strings.Builder
	col  int
}

func lex(src string) *lexer {
	return &lexer{
		src:  src,
		col:  1,
	}
}

// next scans the next token from the input. Whitespace is dropped before
// tokens are split, so it never ends a token: "ad d" scans as "add". The
// second result is false once the input is exhausted.
func (l *lexer) next() (lexToken, bool) {
	defer l.buf.Reset()
	var tok lexToken
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		raw := l.src[l.off : l.off+sz]
		col := l.col
		l.off += sz
		l.col++
		switch {
		case unicode.IsSpace(r):
			continue
		case strings.ContainsRune(delimiters, r):
			if l.buf.Len() == 0 {
				// Adjacent delimiters would make an empty token.
				continue
			}
			tok.text = l.buf.String()
			return tok, true
		default:
			if l.buf.Len() == 0 {
				tok.pos = col
			}
			// Write the raw bytes so that invalid UTF-8 shows up unchanged in
			// error messages.
			l.buf.WriteString(raw)
		}
	}
	if l.buf.Len() == 0 {
		return lexToken{}, false
	}
	tok.text = l.buf.String()
	return tok, true
}

// tokens scans all tokens in src. It never fails.
func tokens(src string) []lexToken {
	var toks []lexToken
	l := lex(src)
	for tok, ok := l.next(); ok; tok, ok = l.next() {
		toks = append(toks, tok)
	}
	return toks
}
