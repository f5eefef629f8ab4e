package account

// Detail is the externally visible view of an account: the spendable balance
// alongside the savings position with interest settled up to the queried
// height.
type Detail struct {
	Address          string `json:"address"`
	Nonce            uint64 `json:"nonce"`
	Balance          uint64 `json:"balance"`
	SavingsPrincipal uint64 `json:"savingsPrincipal"`
	AccruedBalance   uint64 `json:"accruedBalance"`
	LastUpdateHeight uint64 `json:"lastUpdateHeight"`
	StateRoot        string `json:"stateRoot"`
}
