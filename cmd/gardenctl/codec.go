package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
)

func newDecodeCmd() *cobra.Command {
	var now int64

	cmd := &cobra.Command{
		Use:     "decode <packed>",
		Short:   "Decode a packed cell value (decimal or 0x hex)",
		Example: appName + " decode 0x3c000000006553f1000005 --now 1700000100",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			packed, err := plotcodec.Parse(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("now") {
				now = time.Now().Unix()
			}

			state, err := plotcodec.Decode(packed, now)
			if err != nil {
				return err
			}
			if state == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "empty")
				return nil
			}
			return writeJSON(cmd, decodedCell{
				CellState:        *state,
				ReadyAt:          state.ReadyAt(),
				SecondsRemaining: state.SecondsRemaining(now),
			})
		},
	}
	cmd.Flags().Int64Var(&now, "now", 0, "unix seconds used for readiness (default: current time)")
	return cmd
}

type decodedCell struct {
	plotcodec.CellState
	ReadyAt          uint64 `json:"ready_at"`
	SecondsRemaining uint64 `json:"seconds_remaining"`
}

func newEncodeCmd() *cobra.Command {
	var state plotcodec.CellState

	cmd := &cobra.Command{
		Use:     "encode",
		Short:   "Pack a cell state into its on-chain uint256 form",
		Example: appName + " encode --status 1 --seed 1 --planted 1700000000 --grow 60",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			packed, err := plotcodec.Encode(state)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, packed.Dec())
			fmt.Fprintln(out, packed.Hex())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Uint8Var(&state.Status, "status", plotcodec.StatusPlanted, "cell status")
	flags.Uint16Var(&state.SeedType, "seed", 0, "seed type")
	flags.Uint64Var(&state.PlantedAt, "planted", 0, "planted-at unix seconds")
	flags.Uint32Var(&state.GrowDuration, "grow", 0, "grow duration in seconds")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
