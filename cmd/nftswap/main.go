package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/nftswap-network/nftswap-daemon/config"
	"github.com/nftswap-network/nftswap-daemon/internal/core/application"
	"github.com/nftswap-network/nftswap-daemon/internal/core/ports"
	"github.com/nftswap-network/nftswap-daemon/internal/infrastructure/pubsub"
	dbbadger "github.com/nftswap-network/nftswap-daemon/internal/infrastructure/storage/db/badger"
	"github.com/nftswap-network/nftswap-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "nftswap operator CLI"
	app.Usage = "Command line interface for nftswap pool operators"
	app.Commands = append(
		app.Commands,
		&pool,
		&trades,
		&quote,
		&buy,
		&sell,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

type services struct {
	repoManager ports.RepoManager
	poolSvc     application.PoolService
	tradeSvc    application.TradeService
}

func getServices() (*services, error) {
	var repoManager ports.RepoManager
	switch config.GetString(config.DbTypeKey) {
	case "inmemory":
		repoManager = inmemory.NewDbManager()
	default:
		manager, err := dbbadger.NewDbManager(config.GetDatadir(), nil)
		if err != nil {
			return nil, fmt.Errorf("opening db: %w", err)
		}
		repoManager = manager
	}

	pubsubSvc := pubsub.NewService()
	poolSvc := application.NewPoolService(repoManager, pubsubSvc)
	tradeSvc, err := application.NewTradeService(
		repoManager, pubsubSvc,
		config.GetProtocolFeeFraction(), config.GetProtocolFeeRecipient(),
	)
	if err != nil {
		repoManager.Close()
		return nil, err
	}

	return &services{
		repoManager: repoManager,
		poolSvc:     poolSvc,
		tradeSvc:    tradeSvc,
	}, nil
}

func (s *services) close() {
	s.repoManager.Close()
}

func parseAmount(value string) (*uint256.Int, error) {
	if value == "" {
		return uint256.NewInt(0), nil
	}
	amount, err := fixedpoint.FromDecimalString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}

// parseOptionalAmount returns nil for an empty value, meaning "no bound".
func parseOptionalAmount(value string) (*uint256.Int, error) {
	if value == "" {
		return nil, nil
	}
	return parseAmount(value)
}

func printRespJSON(resp interface{}) {
	payload, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(payload))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[nftswap] %v\n", err)
	os.Exit(1)
}
