package statedb

// Account : spendable balance detail of an address
type Account struct {
	Address string
	Nonce   uint64
	Balance uint64
}

// SavingsEntry is the per-account savings ledger record. Principal is the
// stored balance in base units, settled up to LastUpdateHeight. An entry with
// zero principal is a valid resting state; entries are never deleted.
type SavingsEntry struct {
	Principal        uint64
	LastUpdateHeight uint64
}
