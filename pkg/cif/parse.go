package cif

import (
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports malformed input together with the line it was found on.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokData
	tokLoop
	tokTag
	tokValue
)

type token struct {
	kind   tokenKind
	text   string
	quoted bool
	line   int
}

// value converts a value token. The bare "." token is the absent value and
// reports ok=false; the bare "?" token is Unknown.
func (t token) value() (Value, bool) {
	if !t.quoted {
		switch t.text {
		case ".":
			return Value{}, false
		case "?":
			return Unknown, true
		}
	}
	return Str(t.text), true
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer { return &lexer{src: src, line: 1} }

func (l *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: l.line, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func (l *lexer) next() (token, error) {
	for {
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			if l.src[l.pos] == '\n' {
				l.line++
			}
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{kind: tokEOF, line: l.line}, nil
		}
		switch c := l.src[l.pos]; {
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		case c == ';' && (l.pos == 0 || l.src[l.pos-1] == '\n'):
			return l.textField()
		case c == '\'' || c == '"':
			return l.quoted(c)
		default:
			return l.bare(), nil
		}
	}
}

func (l *lexer) textField() (token, error) {
	line := l.line
	start := l.pos + 1
	end := strings.Index(l.src[start:], "\n;")
	if end < 0 {
		return token{}, l.errorf("unterminated text field")
	}
	text := l.src[start : start+end]
	l.line += strings.Count(text, "\n") + 1
	l.pos = start + end + 2
	return token{kind: tokValue, text: strings.TrimSuffix(text, "\r"), quoted: true, line: line}, nil
}

func (l *lexer) quoted(q byte) (token, error) {
	start := l.pos + 1
	for i := start; i < len(l.src); i++ {
		switch l.src[i] {
		case '\n':
			return token{}, l.errorf("unterminated quoted value")
		case q:
			if i+1 == len(l.src) || isSpace(l.src[i+1]) {
				l.pos = i + 1
				return token{kind: tokValue, text: l.src[start:i], quoted: true, line: l.line}, nil
			}
		}
	}
	return token{}, l.errorf("unterminated quoted value")
}

func (l *lexer) bare() token {
	start := l.pos
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(text, "_"):
		return token{kind: tokTag, text: text, line: l.line}
	case strings.HasPrefix(lower, "data_"):
		return token{kind: tokData, text: text[len("data_"):], line: l.line}
	case lower == "loop_":
		return token{kind: tokLoop, text: text, line: l.line}
	}
	return token{kind: tokValue, text: text, line: l.line}
}

// Parse reads every data block from r.
//
// Rows appear in the order they occur in the input. Consecutive key/value
// pairs of one category are collected into a single Record; each loop_ row
// becomes its own Record. Tags before the first data_ header go into an
// unnamed block.
func Parse(r io.Reader) ([]*Block, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	p := &parser{lex: newLexer(string(src))}
	return p.parse()
}

type parser struct {
	lex     *lexer
	blocks  []*Block
	cur     *Block
	pending *Row
	peeked  *token
}

func (p *parser) token() (token, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *parser) unread(t token) { p.peeked = &t }

func (p *parser) block() *Block {
	if p.cur == nil {
		p.cur = &Block{}
		p.blocks = append(p.blocks, p.cur)
	}
	return p.cur
}

func (p *parser) flush() {
	if p.pending == nil {
		return
	}
	b := p.block()
	b.Rows = append(b.Rows, *p.pending)
	p.pending = nil
}

func (p *parser) parse() ([]*Block, error) {
	for {
		t, err := p.token()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokEOF:
			p.flush()
			return p.blocks, nil
		case tokData:
			p.flush()
			p.cur = &Block{Name: t.text}
			p.blocks = append(p.blocks, p.cur)
		case tokLoop:
			p.flush()
			if err := p.loop(); err != nil {
				return nil, err
			}
		case tokTag:
			if err := p.pair(t); err != nil {
				return nil, err
			}
		default:
			return nil, &SyntaxError{Line: t.line, Msg: fmt.Sprintf("unexpected value %q", t.text)}
		}
	}
}

func (p *parser) pair(tag token) error {
	cat, attr, err := splitTag(tag)
	if err != nil {
		return err
	}
	t, err := p.token()
	if err != nil {
		return err
	}
	if t.kind != tokValue {
		return &SyntaxError{Line: tag.line, Msg: fmt.Sprintf("no value for %s", tag.text)}
	}
	if p.pending != nil {
		_, dup := p.pending.Record[attr]
		if p.pending.Category != cat || dup {
			p.flush()
		}
	}
	if p.pending == nil {
		p.pending = &Row{Category: cat, Record: Record{}}
	}
	if v, ok := t.value(); ok {
		p.pending.Record[attr] = v
	}
	return nil
}

func (p *parser) loop() error {
	var cat string
	var attrs []string
	for {
		t, err := p.token()
		if err != nil {
			return err
		}
		if t.kind != tokTag {
			p.unread(t)
			break
		}
		c, a, err := splitTag(t)
		if err != nil {
			return err
		}
		if cat == "" {
			cat = c
		} else if c != cat {
			return &SyntaxError{Line: t.line, Msg: fmt.Sprintf("loop mixes categories %s and %s", cat, c)}
		}
		attrs = append(attrs, a)
	}
	if len(attrs) == 0 {
		return p.lex.errorf("loop_ without tags")
	}

	b := p.block()
	var rec Record
	n, line := 0, p.lex.line
	for {
		t, err := p.token()
		if err != nil {
			return err
		}
		if t.kind != tokValue {
			p.unread(t)
			break
		}
		line = t.line
		if n == 0 {
			rec = make(Record, len(attrs))
		}
		if v, ok := t.value(); ok {
			rec[attrs[n]] = v
		}
		if n++; n == len(attrs) {
			b.Rows = append(b.Rows, Row{Category: cat, Record: rec})
			n = 0
		}
	}
	if n != 0 {
		return &SyntaxError{Line: line, Msg: fmt.Sprintf("loop for %s has an incomplete row", cat)}
	}
	return nil
}

func splitTag(t token) (category, attr string, err error) {
	dot := strings.IndexByte(t.text, '.')
	if dot <= 1 || dot == len(t.text)-1 {
		return "", "", &SyntaxError{Line: t.line, Msg: fmt.Sprintf("malformed tag %q", t.text)}
	}
	return strings.ToLower(t.text[:dot]), strings.ToLower(t.text[dot+1:]), nil
}
