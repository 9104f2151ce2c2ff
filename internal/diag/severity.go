package diag

// Severity ranks diagnostics; Bag.Sort puts higher severities first on a shared span.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError // всё, что останавливает разбор единицы
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
