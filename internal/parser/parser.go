package parser

import (
	"fmt"

	"kangaroo/internal/ast"
	"kangaroo/internal/diag"
	"kangaroo/internal/lexer"
	"kangaroo/internal/source"
	"kangaroo/internal/token"
)

// Mode selects the grammar.
type Mode uint8

const (
	// ModeFull parses argument lists and value expressions and recovers after errors.
	ModeFull Mode = iota
	// ModeCompat scans over args and value and stops at the first error.
	ModeCompat
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeCompat:
		return "compat"
	}
	return "unknown"
}

// ParseMode parses the textual form used by flags and kangaroo.toml.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "full":
		return ModeFull, nil
	case "compat":
		return ModeCompat, nil
	}
	return ModeFull, fmt.Errorf("unknown parse mode %q (want full|compat)", s)
}

type Options struct {
	Mode          Mode
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	// Block is NoBlockID when a compat parse failed.
	Block ast.BlockID
	Bag   *diag.Bag
	// Err is the first parse error, nil on a clean parse.
	Err error
}

// Parser - состояние парсера на одну единицу ввода
type Parser struct {
	lx       *lexer.Lexer    // поток токенов
	arenas   *ast.Builder    // построитель аренных узлов
	fs       *source.FileSet // нужен только для спанов/путей при надобности
	opts     Options
	cur      token.Token // current
	peek     token.Token // one-token lookahead
	lastSpan source.Span // span последнего съеденного токена
	firstErr *Error
}

// ParseFile - входная точка для разбора одной единицы ввода
// (файла, строки или диапазона, на который настроен lexer).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		fs:     fs,
		opts:   opts,
	}
	// два advance: cur - первый реальный токен, peek - следующий
	p.advance()
	p.advance()

	block := arenas.NewBlock(p.cur.Span.ZeroideToEnd())
	switch opts.Mode {
	case ModeCompat:
		if err := p.parseCompat(block); err != nil {
			block = ast.NoBlockID
		}
	default:
		p.parseBlock(block)
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	res := Result{Block: block, Bag: bag}
	if p.firstErr != nil {
		res.Err = p.firstErr
	}
	return res
}

// Parse разбирает текст в режиме совместимости: первая ошибка прерывает разбор,
// частичный блок отбрасывается.
func Parse(text string) (Tree, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(text))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, lx, builder, Options{Mode: ModeCompat})
	if res.Err != nil {
		return Tree{}, res.Err
	}
	return Tree{Builder: builder, Block: res.Block}, nil
}

// advance сдвигает окно: peek становится cur, из лексера берётся новый peek.
func (p *Parser) advance() token.Token {
	if p.cur.Kind != token.EOF && !p.cur.Span.Empty() {
		p.lastSpan = p.cur.Span
	}
	prev := p.cur
	p.cur = p.peek
	p.peek = p.lx.Next()
	return prev
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur.Kind == k
}

// fail records a parse error at sp and returns it.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string, notes ...diag.Note) *Error {
	e := &Error{Code: code, Span: sp, Message: msg}
	if p.firstErr == nil {
		p.firstErr = e
	}
	p.report(code, diag.SevError, sp, msg, notes)
	return e
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
	return true
}

// errSpan - span для диагностики на текущем токене.
// У синтетических и EOF токенов span пустой, тогда указываем сразу за последним токеном.
func (p *Parser) errSpan() source.Span {
	if p.cur.Span.Empty() && !p.lastSpan.Empty() {
		return p.lastSpan.ZeroideToEnd()
	}
	return p.cur.Span
}
