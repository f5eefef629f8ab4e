package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/herdius/herdius-savings/accounts/account"
	"github.com/herdius/herdius-savings/blockchain"
	"github.com/herdius/herdius-savings/libs/fixed"
	"github.com/herdius/herdius-savings/savings"
	"github.com/herdius/herdius-savings/storage/cache"
	"github.com/herdius/herdius-savings/storage/db"
	"github.com/herdius/herdius-savings/storage/state/statedb"
	txbyte "github.com/herdius/herdius-savings/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poolStub struct {
	txs []txbyte.Tx
}

func (p *poolStub) SubmitTx(t txbyte.Tx) int {
	p.txs = append(p.txs, t)
	return len(p.txs)
}

func newTestHandler(t *testing.T) (http.Handler, *poolStub, *statedb.State) {
	state, err := statedb.NewMemory()
	require.NoError(t, err)
	require.NoError(t, state.SetAccount(statedb.Account{Address: "HxAlice", Nonce: 2, Balance: 750}))
	root, err := state.Commit()
	require.NoError(t, err)

	blockDB, err := db.NewDB("test", db.MemDBBackend, "")
	require.NoError(t, err)
	chain := blockchain.NewService(blockDB)
	_, err = chain.CreateOrLoadGenesisBlock(root)
	require.NoError(t, err)

	rate, err := fixed.ParseRate("0.01")
	require.NoError(t, err)
	ledger := savings.NewService(state, state, rate, nil)

	pool := &poolStub{}
	return Handler(pool, account.NewService(state, ledger), chain, cache.New()), pool, state
}

func TestAddTx(t *testing.T) {
	handler, pool, _ := newTestHandler(t)

	body := `{"SenderAddress":"HxAlice","Type":"deposit","Amount":100,"Nonce":3}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/tx", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pendingTxs":1`)
	require.Len(t, pool.txs, 1)
}

func TestAddTxMalformed(t *testing.T) {
	handler, pool, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/tx", strings.NewReader("{nope")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, pool.txs)
}

func TestGetAccount(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/account/HxAlice", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":750`)
	assert.Contains(t, rec.Body.String(), `"nonce":2`)
}

func TestGetAccountNotFound(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/account/HxNobody", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBlock(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/block/0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Height":0`)

	// Served from cache on the second hit.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/block/0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/block/last", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/block/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/block/teapot", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
