package tx

import (
	"github.com/pkg/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Tx is an arbitrary byte array, an amino-encoded SavingsTx on the wire.
type Tx []byte

// Txs is a slice of Tx.
type Txs [][]byte

// Savings operation kinds.
const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"
)

// SavingsTx is one savings ledger operation as submitted by an account. The
// sender address is the account the operation applies to; the dispatch layer
// treats it as the invocation context.
type SavingsTx struct {
	SenderAddress string
	Type          string
	Amount        uint64
	Nonce         uint64
}

// Encode marshals the transaction for mempool and block storage.
func (t *SavingsTx) Encode() (Tx, error) {
	bz, err := cdc.MarshalJSON(t)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal savings tx")
	}
	return bz, nil
}

// Decode unmarshals a wire transaction.
func Decode(bz Tx) (*SavingsTx, error) {
	t := &SavingsTx{}
	if err := cdc.UnmarshalJSON(bz, t); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal savings tx")
	}
	return t, nil
}
