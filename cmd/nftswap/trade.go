package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var (
	trades = cli.Command{
		Name:   "trades",
		Usage:  "list the executed trades",
		Flags:  []cli.Flag{&cli.StringFlag{Name: "pool", Usage: "filter by pool"}},
		Action: tradesAction,
	}

	quote = cli.Command{
		Name:  "quote",
		Usage: "preview a trade without executing it",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.Uint64Flag{Name: "items", Usage: "number of NFTs", Required: true},
			&cli.BoolFlag{Name: "sell", Usage: "preview a sell instead of a buy"},
		},
		Action: quoteAction,
	}

	buy = cli.Command{
		Name:  "buy",
		Usage: "buy NFTs from a pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringSliceFlag{Name: "id", Usage: "specific NFT id, repeatable"},
			&cli.Uint64Flag{Name: "any", Usage: "buy this many arbitrary NFTs"},
			&cli.StringFlag{Name: "max_input", Usage: "slippage cap on the total input"},
			&cli.StringFlag{Name: "offer", Usage: "funds put up", Required: true},
			&cli.StringFlag{Name: "recipient", Usage: "NFT recipient", Required: true},
		},
		Action: buyAction,
	}

	sell = cli.Command{
		Name:  "sell",
		Usage: "sell NFTs to a pool",
		Flags: []cli.Flag{
			poolNameFlag(),
			&cli.StringSliceFlag{Name: "id", Usage: "NFT id, repeatable", Required: true},
			&cli.StringFlag{Name: "min_output", Usage: "slippage floor on the net output"},
			&cli.StringFlag{Name: "recipient", Usage: "funds recipient", Required: true},
		},
		Action: sellAction,
	}
)

func tradesAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	if poolName := ctx.String("pool"); poolName != "" {
		trades, err := svc.repoManager.TradeRepository().GetTradesForPool(
			context.Background(), poolName,
		)
		if err != nil {
			return err
		}
		printRespJSON(trades)
		return nil
	}

	trades, err := svc.repoManager.TradeRepository().GetAllTrades(
		context.Background(),
	)
	if err != nil {
		return err
	}
	printRespJSON(trades)
	return nil
}

func quoteAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	preview := svc.tradeSvc.PreviewBuy
	if ctx.Bool("sell") {
		preview = svc.tradeSvc.PreviewSell
	}
	info, err := preview(
		context.Background(), ctx.String("pool"), ctx.Uint64("items"),
	)
	if err != nil {
		return err
	}
	printRespJSON(info)
	return nil
}

func buyAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	maxInput, err := parseOptionalAmount(ctx.String("max_input"))
	if err != nil {
		return err
	}
	offer, err := parseAmount(ctx.String("offer"))
	if err != nil {
		return err
	}

	if count := ctx.Uint64("any"); count > 0 {
		info, err := svc.tradeSvc.BuyAnyNFTs(
			context.Background(), ctx.String("pool"), count,
			maxInput, offer, ctx.String("recipient"),
		)
		if err != nil {
			return err
		}
		printRespJSON(info)
		return nil
	}

	info, err := svc.tradeSvc.BuySpecificNFTs(
		context.Background(), ctx.String("pool"), ctx.StringSlice("id"),
		maxInput, offer, ctx.String("recipient"),
	)
	if err != nil {
		return err
	}
	printRespJSON(info)
	return nil
}

func sellAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	defer svc.close()

	minOutput, err := parseOptionalAmount(ctx.String("min_output"))
	if err != nil {
		return err
	}

	info, err := svc.tradeSvc.SellNFTs(
		context.Background(), ctx.String("pool"), ctx.StringSlice("id"),
		minOutput, ctx.String("recipient"),
	)
	if err != nil {
		return err
	}
	printRespJSON(info)
	return nil
}
