package mempool

import (
	"sync"

	"github.com/herdius/herdius-savings/tx"
)

// Service is the queue of pending savings transactions waiting for the next
// block.
type Service interface {
	AddTx(tx.Tx) int
	GetTxs() tx.Txs
	RemoveTxs(int)
}

var _ Service = (*MemPool)(nil)

// MemPool holds submitted transactions in arrival order, which fixes the
// order they are applied in within a block.
type MemPool struct {
	mtx sync.Mutex
	txs []tx.Tx
}

// New returns an empty MemPool.
func New() *MemPool {
	return &MemPool{}
}

// AddTx appends t and returns the total number of pending transactions.
func (m *MemPool) AddTx(t tx.Tx) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.txs = append(m.txs, t)
	return len(m.txs)
}

// GetTxs returns a snapshot of all pending transactions.
func (m *MemPool) GetTxs() tx.Txs {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	txs := make(tx.Txs, 0, len(m.txs))
	for _, t := range m.txs {
		txs = append(txs, t)
	}
	return txs
}

// RemoveTxs drops the first n transactions, typically after they were sealed
// into a block.
func (m *MemPool) RemoveTxs(n int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if n > len(m.txs) {
		n = len(m.txs)
	}
	m.txs = m.txs[n:]
}
