package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const appName = "gardenctl"

type rootOptions struct {
	rpcURL      string
	gardenCore  string
	items1155   string
	gardenToken string
	chainID     int64
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Inspect garden plots and packed cell values",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	chainID, _ := strconv.ParseInt(os.Getenv("CHAIN_ID"), 10, 64)
	if chainID == 0 {
		chainID = 84532
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.rpcURL, "rpc", os.Getenv("RPC_URL"), "JSON-RPC endpoint")
	flags.StringVar(&opts.gardenCore, "garden-core", os.Getenv("GARDENCORE_ADDRESS"), "GardenCore contract address")
	flags.StringVar(&opts.items1155, "items1155", os.Getenv("ITEMS1155_ADDRESS"), "Items1155 contract address")
	flags.StringVar(&opts.gardenToken, "garden-token", os.Getenv("GARDEN_TOKEN_ADDRESS"), "GARDEN ERC-20 address (optional)")
	flags.Int64Var(&opts.chainID, "chain-id", chainID, "expected chain id (0 skips the check)")

	root.AddCommand(
		newDiagnoseCmd(opts),
		newDecodeCmd(),
		newEncodeCmd(),
		newMigrateCmd(),
	)
	return root
}
