package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/nftswap-network/nftswap-daemon/internal/core/domain"
)

var (
	pool = cli.Command{
		Name:  "pool",
		Usage: "manage the pools of the daemon",
		Subcommands: []*cli.Command{
			poolNewCmd, poolInfoCmd, poolListCmd,
			poolDepositCmd, poolDepositNFTsCmd,
			poolWithdrawCmd, poolWithdrawNFTsCmd,
			poolSetPriceCmd, poolSetDeltaCmd, poolSetFeeCmd, poolSetRecipientCmd,
		},
	}

	poolNewCmd = &cli.Command{
		Name:  "new",
		Usage: "create a new pool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "unique pool name", Required: true},
			&cli.StringFlag{
				Name:  "type",
				Usage: "pool type: sell, buy or trade",
				Value: "trade",
			},
			&cli.StringFlag{
				Name:  "curve",
				Usage: "pricing curve: linear, exponential or constant-product",
				Value: "linear",
			},
			&cli.StringFlag{
				Name: "start_price", Usage: "initial start price", Required: true,
			},
			&cli.StringFlag{Name: "delta", Usage: "initial delta", Required: true},
			&cli.StringFlag{
				Name: "fee", Usage: "trade fee fraction (trade pools only)", Value: "0",
			},
			&cli.StringFlag{
				Name:  "recipient",
				Usage: "assets recipient (sell/buy pools only)",
			},
			&cli.BoolFlag{
				Name:  "indexed_inventory",
				Usage: "use the map-indexed inventory strategy",
			},
		},
		Action: poolNewAction,
	}
	poolInfoCmd = &cli.Command{
		Name:   "info",
		Usage:  "get info about a pool",
		Flags:  []cli.Flag{poolNameFlag()},
		Action: poolInfoAction,
	}
	poolListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list all pools",
		Action: poolListAction,
	}
	poolDepositCmd = &cli.Command{
		Name:  "deposit",
		Usage: "credit native-asset funds to a pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringFlag{Name: "amount", Usage: "amount to deposit", Required: true},
		},
		Action: poolDepositAction,
	}
	poolDepositNFTsCmd = &cli.Command{
		Name:  "depositnfts",
		Usage: "add NFTs to a pool inventory",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringSliceFlag{Name: "id", Usage: "NFT id, repeatable", Required: true},
		},
		Action: poolDepositNFTsAction,
	}
	poolWithdrawCmd = &cli.Command{
		Name:  "withdraw",
		Usage: "withdraw native-asset funds from a pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringFlag{Name: "amount", Usage: "amount to withdraw", Required: true},
			&cli.StringFlag{Name: "to", Usage: "destination", Required: true},
		},
		Action: poolWithdrawAction,
	}
	poolWithdrawNFTsCmd = &cli.Command{
		Name:  "withdrawnfts",
		Usage: "withdraw NFTs from a pool inventory",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringSliceFlag{Name: "id", Usage: "NFT id, repeatable", Required: true},
			&cli.StringFlag{Name: "to", Usage: "destination", Required: true},
		},
		Action: poolWithdrawNFTsAction,
	}
	poolSetPriceCmd = &cli.Command{
		Name:  "setprice",
		Usage: "update the start price of a pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringFlag{Name: "value", Usage: "new start price", Required: true},
		},
		Action: poolSetPriceAction,
	}
	poolSetDeltaCmd = &cli.Command{
		Name:  "setdelta",
		Usage: "update the delta of a pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringFlag{Name: "value", Usage: "new delta", Required: true},
		},
		Action: poolSetDeltaAction,
	}
	poolSetFeeCmd = &cli.Command{
		Name:  "setfee",
		Usage: "update the trade fee of a trade pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringFlag{Name: "value", Usage: "new fee fraction", Required: true},
		},
		Action: poolSetFeeAction,
	}
	poolSetRecipientCmd = &cli.Command{
		Name:  "setrecipient",
		Usage: "update the assets recipient of a sell/buy pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringFlag{Name: "value", Usage: "new recipient", Required: true},
		},
		Action: poolSetRecipientAction,
	}
)

func poolNameFlag() cli.Flag {
	return &cli.StringFlag{Name: "pool", Usage: "pool name", Required: true}
}

func poolTypeFromString(s string) (int, error) {
	switch s {
	case "sell":
		return domain.PoolTypeSell, nil
	case "buy":
		return domain.PoolTypeBuy, nil
	case "trade":
		return domain.PoolTypeTrade, nil
	default:
		return -1, fmt.Errorf("unknown pool type %q", s)
	}
}

func curveTypeFromString(s string) (int, error) {
	switch s {
	case "linear":
		return domain.CurveTypeLinear, nil
	case "exponential":
		return domain.CurveTypeExponential, nil
	case "constant-product":
		return domain.CurveTypeConstantProduct, nil
	default:
		return -1, fmt.Errorf("unknown curve type %q", s)
	}
}

func poolNewAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	poolType, err := poolTypeFromString(ctx.String("type"))
	if err != nil {
		return err
	}
	curveType, err := curveTypeFromString(ctx.String("curve"))
	if err != nil {
		return err
	}
	startPrice, err := parseAmount(ctx.String("start_price"))
	if err != nil {
		return err
	}
	delta, err := parseAmount(ctx.String("delta"))
	if err != nil {
		return err
	}
	fee, err := decimal.NewFromString(ctx.String("fee"))
	if err != nil {
		return fmt.Errorf("invalid fee: %w", err)
	}
	inventoryStrategy := domain.InventoryStrategyCompact
	if ctx.Bool("indexed_inventory") {
		inventoryStrategy = domain.InventoryStrategyIndexed
	}

	info, err := svc.poolSvc.CreatePool(
		context.Background(), ctx.String("name"), poolType, curveType,
		startPrice, delta, fee, ctx.String("recipient"), inventoryStrategy,
	)
	if err != nil {
		return err
	}
	printRespJSON(info)
	return nil
}

func poolInfoAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	info, err := svc.poolSvc.GetPool(context.Background(), ctx.String("pool"))
	if err != nil {
		return err
	}
	printRespJSON(info)
	return nil
}

func poolListAction(_ *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	infos, err := svc.poolSvc.ListPools(context.Background())
	if err != nil {
		return err
	}
	printRespJSON(infos)
	return nil
}

func poolDepositAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}
	if err := svc.poolSvc.DepositTokens(
		context.Background(), ctx.String("pool"), amount,
	); err != nil {
		return err
	}
	fmt.Println("deposit done")
	return nil
}

func poolDepositNFTsAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.poolSvc.DepositNFTs(
		context.Background(), ctx.String("pool"), ctx.StringSlice("id"),
	); err != nil {
		return err
	}
	fmt.Println("deposit done")
	return nil
}

func poolWithdrawAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}
	if err := svc.poolSvc.WithdrawTokens(
		context.Background(), ctx.String("pool"), amount, ctx.String("to"),
	); err != nil {
		return err
	}
	fmt.Println("withdrawal done")
	return nil
}

func poolWithdrawNFTsAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.poolSvc.WithdrawNFTs(
		context.Background(), ctx.String("pool"),
		ctx.StringSlice("id"), ctx.String("to"),
	); err != nil {
		return err
	}
	fmt.Println("withdrawal done")
	return nil
}

func poolSetPriceAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	value, err := parseAmount(ctx.String("value"))
	if err != nil {
		return err
	}
	if err := svc.poolSvc.UpdateStartPrice(
		context.Background(), ctx.String("pool"), value,
	); err != nil {
		return err
	}
	fmt.Println("start price updated")
	return nil
}

func poolSetDeltaAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	value, err := parseAmount(ctx.String("value"))
	if err != nil {
		return err
	}
	if err := svc.poolSvc.UpdateDelta(
		context.Background(), ctx.String("pool"), value,
	); err != nil {
		return err
	}
	fmt.Println("delta updated")
	return nil
}

func poolSetFeeAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	fee, err := decimal.NewFromString(ctx.String("value"))
	if err != nil {
		return fmt.Errorf("invalid fee: %w", err)
	}
	if err := svc.poolSvc.UpdateTradeFee(
		context.Background(), ctx.String("pool"), fee,
	); err != nil {
		return err
	}
	fmt.Println("trade fee updated")
	return nil
}

func poolSetRecipientAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.poolSvc.UpdateAssetsRecipient(
		context.Background(), ctx.String("pool"), ctx.String("value"),
	); err != nil {
		return err
	}
	fmt.Println("assets recipient updated")
	return nil
}
