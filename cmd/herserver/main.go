package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/herdius/herdius-savings/accounts/account"
	"github.com/herdius/herdius-savings/blockchain"
	"github.com/herdius/herdius-savings/config"
	"github.com/herdius/herdius-savings/libs/fixed"
	"github.com/herdius/herdius-savings/libs/log"
	"github.com/herdius/herdius-savings/rpc/http/rest"
	"github.com/herdius/herdius-savings/savings"
	"github.com/herdius/herdius-savings/storage/cache"
	"github.com/herdius/herdius-savings/storage/db"
	"github.com/herdius/herdius-savings/storage/mempool"
	"github.com/herdius/herdius-savings/storage/state/statedb"
	sup "github.com/herdius/herdius-savings/supervisor/service"
)

func main() {
	envFlag := flag.String("env", "dev", "environment to build network and run process for")
	portFlag := flag.String("port", "8080", "port for the REST API")
	blockTimeFlag := flag.Duration("blocktime", 3*time.Second, "interval between sealed blocks")
	backupFlag := flag.Bool("backup", false, "backup sealed blocks to S3")
	flag.Parse()

	cfg := config.GetConfiguration(*envFlag)

	blockDB, err := db.NewDB("baseblockdb", db.GoBadgerBackend, cfg.BlockDBPath)
	if err != nil {
		log.Fatal().Msgf("Failed to open block db: %v", err)
	}
	defer blockDB.Close()
	chain := blockchain.NewService(blockDB)

	// Reopen state at the root the chain last committed to.
	var stateRoot common.Hash
	lastBlock, err := chain.GetLastBlock()
	if err != nil {
		log.Fatal().Msgf("Failed to load last block: %v", err)
	}
	if lastBlock != nil {
		stateRoot = common.BytesToHash(lastBlock.Header.StateRoot)
	}
	state, err := statedb.New(stateRoot, cfg.StateDBPath)
	if err != nil {
		log.Fatal().Msgf("Failed to open state db: %v", err)
	}

	rate, err := fixed.ParseRate(cfg.InterestRate)
	if err != nil {
		log.Fatal().Msgf("Invalid interest rate %q: %v", cfg.InterestRate, err)
	}
	ledger := savings.NewService(state, state, rate, sup.EventLogger{})

	lastBlock, err = chain.CreateOrLoadGenesisBlock(state.Root())
	if err != nil {
		log.Fatal().Msgf("Failed to create or load genesis block: %v", err)
	}
	log.Info().
		Uint64("height", lastBlock.GetHeight()).
		Str("stateRoot", lastBlock.Header.StateRoot.String()).
		Msg("Chain loaded")

	supsvc := sup.New(ledger, chain, state, mempool.New(), *envFlag, *backupFlag)

	go func() {
		handler := rest.Handler(supsvc, account.NewService(state, ledger), chain, cache.New())
		log.Info().Msgf("Serving REST API at port %s", *portFlag)
		if err := http.ListenAndServe(":"+*portFlag, handler); err != nil {
			log.Fatal().Msgf("REST API server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(*blockTimeFlag)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			block, err := supsvc.ProcessTxs(lastBlock)
			if err != nil {
				log.Error().Msgf("Failed to seal block at height %d: %v", lastBlock.GetHeight()+1, err)
				continue
			}
			lastBlock = block
		case <-stop:
			log.Info().Msg("Shutting down")
			return
		}
	}
}
