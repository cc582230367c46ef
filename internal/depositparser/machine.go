package depositparser

import (
	"strings"

	"fjacquet/stmt-csv/internal/classifier"
	"fjacquet/stmt-csv/internal/logging"
	"fjacquet/stmt-csv/internal/models"
)

type state int

const (
	// stateIdle waits for a date header or a transaction line.
	stateIdle state = iota
	// stateAccumulating holds an open entry that continuation lines extend.
	stateAccumulating
	// stateDone is entered once input is exhausted.
	stateDone
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAccumulating:
		return "accumulating"
	default:
		return "done"
	}
}

// machine walks a ledger line by line. Every transition is a method so the
// continuation handling can be driven directly in tests.
type machine struct {
	p           *Parser
	state       state
	currentDate string
	pending     models.RawDepositEntry
	out         []models.RawDepositEntry
}

func newMachine(p *Parser) *machine {
	return &machine{p: p, state: stateIdle}
}

// feed advances the machine by one normalized line.
func (m *machine) feed(n int, line string) {
	switch classifier.ClassifyLine(line) {
	case classifier.LineBlank:
		// blank lines neither open nor close an entry
	case classifier.LineDateHeader:
		m.onDateHeader(line)
	case classifier.LineTime:
		m.onTransaction(n, m.p.parseTimeLine(m.date(), line))
	case classifier.LineDated:
		if !m.p.acceptsDatedLine(line) {
			m.onOther(n, line)
			return
		}
		m.onTransaction(n, m.p.parseDatedLine(m.currentDate, line))
	default:
		m.onOther(n, line)
	}
}

func (m *machine) onDateHeader(line string) {
	m.flush()
	m.currentDate = normalizeHeader(line)
	m.state = stateIdle
}

func (m *machine) onTransaction(n int, entry models.RawDepositEntry) {
	m.flush()
	m.pending = entry
	m.state = stateAccumulating
	m.p.logger.Debug("Opened deposit entry",
		logging.Field{Key: logging.FieldLine, Value: n},
		logging.Field{Key: logging.FieldStatus, Value: m.state.String()})
}

func (m *machine) onOther(n int, line string) {
	if m.state != stateAccumulating {
		m.p.logger.Debug("Ignoring line outside a deposit entry", logging.Field{Key: logging.FieldLine, Value: n})
		return
	}
	m.pending.BankCode = joinRemark(m.pending.BankCode, line)
}

// flush emits the open entry, if any and if it carries something.
func (m *machine) flush() {
	if m.state != stateAccumulating {
		return
	}
	entry := m.pending
	m.pending = models.RawDepositEntry{}
	m.state = stateIdle

	if entry.Amount.IsZero() && entry.Description == "" {
		m.p.logger.Debug("Dropping empty deposit entry",
			logging.Field{Key: logging.FieldReason, Value: "zero amount and no description"})
		return
	}
	m.out = append(m.out, entry)
}

// finish flushes and moves to the terminal state.
func (m *machine) finish() []models.RawDepositEntry {
	m.flush()
	m.state = stateDone
	return m.out
}

func (m *machine) date() string {
	if m.currentDate == "" {
		return models.UnknownDate
	}
	return m.currentDate
}

func joinRemark(remark, more string) string {
	more = strings.TrimSpace(more)
	switch {
	case more == "":
		return remark
	case remark == "":
		return more
	default:
		return remark + " " + more
	}
}
