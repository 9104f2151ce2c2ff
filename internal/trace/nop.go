package trace

// nopTracer отбрасывает всё; используется, когда --trace не задан.
type nopTracer struct{}

func (nopTracer) Emit(*Event) {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is returned by FromContext when no tracer was installed.
var Nop Tracer = nopTracer{}
