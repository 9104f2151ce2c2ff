package repl

import (
	"context"
	"strings"

	"kangaroo/internal/driver"
)

// Reply is the outcome of one evaluated line.
type Reply struct {
	Input     string
	Rendering string   // display form on success
	Errors    []string // "SYN2001 missing '#'!" per diagnostic
}

// OK reports whether the line parsed.
func (r Reply) OK() bool { return len(r.Errors) == 0 }

// Eval parses one line as an independent unit.
func Eval(ctx context.Context, line string, opts driver.Options) (Reply, error) {
	line = strings.TrimRight(line, "\r\n")
	reply := Reply{Input: line}
	_, unit, err := driver.ParseSource(ctx, "<repl>", line, opts)
	if err != nil {
		return reply, err
	}
	if !unit.Failed() {
		reply.Rendering = unit.Rendering
		return reply, nil
	}
	for _, d := range unit.Bag.Items() {
		reply.Errors = append(reply.Errors, d.Code.ID()+" "+d.Message)
	}
	if _, ok := unit.Bag.First(); !ok && unit.Err != nil {
		// в мешок не попало ни одной ошибки
		reply.Errors = append(reply.Errors, unit.Err.Error())
	}
	return reply, nil
}
