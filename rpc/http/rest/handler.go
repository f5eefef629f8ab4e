package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/herdius/herdius-savings/accounts/account"
	"github.com/herdius/herdius-savings/blockchain"
	"github.com/herdius/herdius-savings/storage/cache"
	txbyte "github.com/herdius/herdius-savings/tx"
)

// TxSubmitter queues raw transactions for the next block.
type TxSubmitter interface {
	SubmitTx(t txbyte.Tx) int
}

// Handler exposes the savings chain over HTTP: account queries, block
// queries and raw transaction submission.
func Handler(sub TxSubmitter, accounts account.ServiceI, chain blockchain.ServiceI, blocks *cache.Cache) http.Handler {
	router := httprouter.New()

	router.POST("/tx", addTx(sub))
	router.GET("/account/:address", getAccount(accounts, chain))
	router.GET("/block/:height", getBlock(chain, blocks))

	return router
}

// addTx returns a handler for POST /tx requests. The pending pool size is
// echoed back so callers can see queue pressure.
func addTx(sub TxSubmitter) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		decoder := json.NewDecoder(r.Body)
		var newTx txbyte.SavingsTx
		if err := decoder.Decode(&newTx); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		raw, err := newTx.Encode()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		pending := sub.SubmitTx(raw)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"pendingTxs": pending})
	}
}

// getAccount returns a handler for GET /account/:address requests. Accrued
// interest is computed at the current chain height without touching state.
func getAccount(accounts account.ServiceI, chain blockchain.ServiceI) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		height, err := chain.CurrentHeight()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		detail, err := accounts.GetAccountByAddress(ps.ByName("address"), height)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if detail == nil {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detail)
	}
}

// getBlock returns a handler for GET /block/:height requests. Sealed blocks
// never change, so hits are served from the cache.
func getBlock(chain blockchain.ServiceI, blocks *cache.Cache) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		key := ps.ByName("height")

		var block *blockchain.BaseBlock
		if key == "last" {
			last, err := chain.GetLastBlock()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			block = last
		} else if cached, found := blocks.Get(key); found {
			block = cached.(*blockchain.BaseBlock)
		} else {
			height, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				http.Error(w, "invalid block height", http.StatusBadRequest)
				return
			}
			block, err = chain.GetBlockByHeight(height)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if block != nil {
				blocks.Set(key, block)
			}
		}
		if block == nil {
			http.Error(w, "block not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(block)
	}
}
