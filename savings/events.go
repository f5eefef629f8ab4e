package savings

// EventKind labels a savings ledger event.
type EventKind string

const (
	// EventDeposited : an account moved spendable funds into savings.
	EventDeposited EventKind = "savings_deposited"
	// EventWithdrawn : an account moved savings back to spendable funds.
	EventWithdrawn EventKind = "savings_withdrawn"
)

// Event describes one applied savings operation. Interest is the amount
// settled into the principal by the operation's accrual step.
type Event struct {
	Kind      EventKind
	Address   string
	Amount    uint64
	Interest  uint64
	Principal uint64
	Height    uint64
}

// Recorder receives an Event for every applied operation.
type Recorder interface {
	Record(e Event)
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) {}
