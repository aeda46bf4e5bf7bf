package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
	"github.com/osse101/GardenKeeper_Go/internal/seeds"
)

const diagnoseTimeout = 30 * time.Second

func newDiagnoseCmd(opts *rootOptions) *cobra.Command {
	var (
		address string
		plots   []uint
		catalog string
	)

	cmd := &cobra.Command{
		Use:     "diagnose",
		Short:   "Print seed configs, balances and decoded plots for an address",
		Example: appName + " diagnose --address 0xYourAddress --plots 0,1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := chain.NormalizeAddress(address)
			if err != nil {
				return err
			}
			cat, err := seeds.Load(catalog)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), diagnoseTimeout)
			defer cancel()

			client, err := chain.Dial(ctx, opts.rpcURL, chain.Config{
				GardenCoreAddress:  opts.gardenCore,
				Items1155Address:   opts.items1155,
				GardenTokenAddress: opts.gardenToken,
				ChainID:            opts.chainID,
			})
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Chain:", opts.chainID)
			fmt.Fprintln(out, "GardenCore:", client.GardenCoreAddress())
			fmt.Fprintln(out, "Items1155:", opts.items1155)
			fmt.Fprintln(out, "Player:", player)

			ids := make([]uint16, len(plots))
			for i, p := range plots {
				ids[i] = uint16(p)
			}
			return diagnose(ctx, out, client, cat.Types(), player, ids)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&address, "address", "", "player address")
	flags.UintSliceVar(&plots, "plots", []uint{0, 1}, "plot ids to read")
	flags.StringVar(&catalog, "catalog", "", "seed catalog YAML (default: built-in)")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

// diagnose prints the chain view of a player. Failing reads are reported
// inline and the remaining sections still run.
func diagnose(ctx context.Context, out io.Writer, reader chain.Reader, seedTypes []domain.SeedType, player string, plots []uint16) error {
	printHeader(out, "Seed Configs")
	configs := make([]domain.SeedConfig, 0, len(seedTypes))
	failed := false
	for _, t := range seedTypes {
		cfg, err := reader.SeedConfig(ctx, t)
		if err != nil {
			printError(out, "type=%d: %v", t, err)
			failed = true
			continue
		}
		configs = append(configs, cfg)
		fmt.Fprintf(out, " type=%d seedTokenId=%d cropTokenId=%d buyPriceWei=%s grow=%ds active=%t\n",
			t, cfg.SeedTokenID, cfg.CropTokenID, weiString(cfg.BuyPriceWei), cfg.GrowDuration, cfg.Active)
	}

	printHeader(out, "Balances")
	for _, cfg := range configs {
		seedBal, err := reader.BalanceOf(ctx, player, cfg.SeedTokenID)
		if err != nil {
			printError(out, "type=%d seed balance: %v", cfg.Type, err)
			failed = true
			continue
		}
		cropBal, err := reader.BalanceOf(ctx, player, cfg.CropTokenID)
		if err != nil {
			printError(out, "type=%d crop balance: %v", cfg.Type, err)
			failed = true
			continue
		}
		fmt.Fprintf(out, " type=%d seed=%s crop=%s\n", cfg.Type, seedBal, cropBal)
	}

	printHeader(out, "Token")
	token, err := reader.TokenBalance(ctx, player)
	switch {
	case errors.Is(err, domain.ErrTokenNotConfigured):
		fmt.Fprintln(out, " not configured")
	case err != nil:
		printError(out, "token balance: %v", err)
		failed = true
	default:
		fmt.Fprintf(out, " token=%s balance=%s raw=%s decimals=%d\n",
			token.Token, token.Formatted, weiString(token.Raw), token.Decimals)
	}

	printHeader(out, "Plots")
	now, err := reader.HeadTime(ctx)
	if err != nil {
		now = time.Now()
	}
	for _, id := range plots {
		cells, err := reader.PlotCells(ctx, player, id)
		if err != nil {
			printError(out, "plot %d: %v", id, err)
			failed = true
			continue
		}
		fmt.Fprintf(out, " plot %d: %s\n", id, plotSummary(cells, now.Unix()))
	}

	if failed {
		return fmt.Errorf("diagnose finished with read errors")
	}
	printSuccess(out, "Done")
	return nil
}

// plotSummary renders one token per cell: "." for empty, "?" for undecodable
func plotSummary(cells [domain.CellsPerPlot]*big.Int, now int64) string {
	parts := make([]string, len(cells))
	for i, packed := range cells {
		state, err := plotcodec.DecodeBig(packed, now)
		switch {
		case err != nil:
			parts[i] = "?"
		case state == nil:
			parts[i] = "."
		default:
			parts[i] = "{i:" + strconv.Itoa(i) + ",t:" + strconv.Itoa(int(state.SeedType)) + ",ready:" + strconv.FormatBool(state.Ready) + "}"
		}
	}
	return strings.Join(parts, " ")
}

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
