package statedb

import (
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRoundTrip(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)

	_, found, err := s.Account("HxAlice")
	assert.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetAccount(Account{Address: "HxAlice", Nonce: 1, Balance: 500}))

	a, found, err := s.Account("HxAlice")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(500), a.Balance)
	assert.Equal(t, uint64(1), a.Nonce)
}

func TestSavingsEntryFoundFlag(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)

	_, found, err := s.SavingsEntry("HxAlice")
	assert.NoError(t, err)
	assert.False(t, found)

	// A zero-principal entry still exists once written.
	require.NoError(t, s.SetSavingsEntry("HxAlice", SavingsEntry{Principal: 0, LastUpdateHeight: 7}))
	e, found, err := s.SavingsEntry("HxAlice")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(0), e.Principal)
	assert.Equal(t, uint64(7), e.LastUpdateHeight)
}

func TestSavingsAndAccountKeysDisjoint(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)

	require.NoError(t, s.SetAccount(Account{Address: "HxAlice", Balance: 10}))
	_, found, err := s.SavingsEntry("HxAlice")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestTransfer(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, s.SetAccount(Account{Address: "HxAlice", Balance: 100}))

	require.NoError(t, s.Transfer("HxAlice", "HxPot", 60))

	b, err := s.Balance("HxAlice")
	assert.NoError(t, err)
	assert.Equal(t, uint64(40), b)
	b, err = s.Balance("HxPot")
	assert.NoError(t, err)
	assert.Equal(t, uint64(60), b)

	err = s.Transfer("HxAlice", "HxPot", 41)
	assert.Equal(t, ErrInsufficientBalance, err)

	// Zero-amount transfers are a no-op even for unknown accounts.
	assert.NoError(t, s.Transfer("HxNobody", "HxPot", 0))
}

func TestIssue(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)

	require.NoError(t, s.Issue("HxPot", 25))
	b, err := s.Balance("HxPot")
	assert.NoError(t, err)
	assert.Equal(t, uint64(25), b)

	require.NoError(t, s.SetAccount(Account{Address: "HxFull", Balance: ^uint64(0)}))
	assert.Equal(t, ErrBalanceOverflow, s.Issue("HxFull", 1))
}

func TestCommitAndReopen(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, s.SetSavingsEntry("HxAlice", SavingsEntry{Principal: 42, LastUpdateHeight: 3}))

	root, err := s.Commit()
	require.NoError(t, err)
	require.Len(t, root, common.HashLength)

	reopened, err := s.At(common.BytesToHash(root))
	require.NoError(t, err)
	e, found, err := reopened.SavingsEntry("HxAlice")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(42), e.Principal)
}

func TestRootChangesWithWrites(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	before := s.Root()
	require.NoError(t, s.SetSavingsEntry("HxAlice", SavingsEntry{Principal: 1}))
	assert.NotEqual(t, before, s.Root())
}

func TestConcurrentReadsDuringCommit(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, s.SetAccount(Account{Address: "HxAlice", Balance: 1}))
	_, err = s.Commit()
	require.NoError(t, err)

	// Readers race block sealing in production; the race detector flags any
	// unguarded trie access here.
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, _, err := s.Account("HxAlice"); err != nil {
					t.Error(err)
					return
				}
				if _, _, err := s.SavingsEntry("HxAlice"); err != nil {
					t.Error(err)
					return
				}
				s.Root()
			}
		}()
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, s.SetAccount(Account{Address: "HxAlice", Balance: uint64(i)}))
		require.NoError(t, s.SetSavingsEntry("HxAlice", SavingsEntry{Principal: uint64(i), LastUpdateHeight: uint64(i)}))
		_, err := s.Commit()
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()
}
