package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent higher-level/coarser events.
type Scope uint8

const (
	// ScopeDriver is a whole CLI command (parse, tokenize, repl session).
	ScopeDriver Scope = iota + 1
	// ScopePass is a phase over one input (load, lex, parse, cache lookup).
	ScopePass
	// ScopeModule is one parse unit: a file or a single line.
	ScopeModule
	ScopeNode // individual bands
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeModule:
		return "module"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event is one line of the trace stream.
type Event struct {
	Time     time.Time
	Seq      uint64 // общий счётчик, порядок между горутинами
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корневого спана команды
	GID      uint64 // горутина-воркер ParseDir
	Name     string // "kangaroo parse", "parse-lines", "unit:examples/a.kg:3", "band"
	Detail   string
	Extra    map[string]string // например errors=1 у unit-спана
}
