package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
)

const testPlayer = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	out, err := execute(t, "encode", "--status", "1", "--seed", "2", "--planted", "1700000000", "--grow", "120")
	require.NoError(t, err)
	lines := strings.Fields(out)
	require.Len(t, lines, 2, "decimal and hex forms")
	assert.True(t, strings.HasPrefix(lines[1], "0x"))

	tests := []struct {
		name      string
		now       string
		ready     bool
		remaining uint64
	}{
		{"growing", "1700000060", false, 60},
		{"ready at boundary", "1700000120", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, packed := range lines {
				out, err := execute(t, "decode", packed, "--now", tt.now)
				require.NoError(t, err)

				var got decodedCell
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				assert.Equal(t, uint16(2), got.SeedType)
				assert.Equal(t, uint64(1700000000), got.PlantedAt)
				assert.Equal(t, uint32(120), got.GrowDuration)
				assert.Equal(t, uint64(1700000120), got.ReadyAt)
				assert.Equal(t, tt.ready, got.Ready)
				assert.Equal(t, tt.remaining, got.SecondsRemaining)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	out, err := execute(t, "decode", "0")
	require.NoError(t, err)
	assert.Equal(t, "empty\n", out)

	_, err = execute(t, "decode", "not-a-number")
	assert.ErrorIs(t, err, plotcodec.ErrInvalidEncoding)

	_, err = execute(t, "encode")
	assert.Error(t, err, "--seed is required")
}

func TestDiagnose(t *testing.T) {
	head := time.Unix(1_700_000_100, 0)
	reader := chain.NewFakeReader(head)
	reader.SetSeedConfig(domain.SeedConfig{Type: domain.SeedCarrot, SeedTokenID: 1001, CropTokenID: 2001, GrowDuration: 60, Active: true})
	reader.SetBalance(testPlayer, 1001, 5)
	reader.SetBalance(testPlayer, 2001, 2)
	reader.SetTokenBalance(testPlayer, big.NewInt(1_250_000_000_000_000_000))
	reader.SetCell(testPlayer, 0, 4, plotcodec.MustEncode(plotcodec.CellState{
		Status: plotcodec.StatusPlanted, SeedType: 1, PlantedAt: 1_700_000_000, GrowDuration: 60,
	}).ToBig())

	var out bytes.Buffer
	err := diagnose(context.Background(), &out, reader, []domain.SeedType{domain.SeedCarrot}, testPlayer, []uint16{0})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "type=1 seedTokenId=1001 cropTokenId=2001")
	assert.Contains(t, text, "active=true")
	assert.Contains(t, text, "type=1 seed=5 crop=2")
	assert.Contains(t, text, "token="+chain.FakeTokenAddress+" balance=1.25 raw=1250000000000000000 decimals=18")
	assert.Contains(t, text, "plot 0: . . . . {i:4,t:1,ready:true} . . . . . . .")
}

func TestDiagnose_ReportsReadErrors(t *testing.T) {
	reader := chain.NewFakeReader(time.Unix(1_700_000_000, 0))
	reader.FailOn(chain.MethodGetPlotCells, errors.New("rpc down"))

	var out bytes.Buffer
	err := diagnose(context.Background(), &out, reader, []domain.SeedType{domain.SeedCarrot}, testPlayer, []uint16{0, 1})
	require.Error(t, err)
	assert.Contains(t, out.String(), "plot 0: rpc down")
	assert.Contains(t, out.String(), "plot 1: rpc down")
	assert.Contains(t, out.String(), "Balances", "earlier sections still run")
}

func TestDiagnose_Token(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		reader := chain.NewFakeReader(time.Unix(1_700_000_000, 0))
		reader.DisableToken()

		var out bytes.Buffer
		err := diagnose(context.Background(), &out, reader, nil, testPlayer, nil)
		require.NoError(t, err, "a missing token address is not a read error")
		assert.Contains(t, out.String(), " not configured")
	})

	t.Run("read failure", func(t *testing.T) {
		reader := chain.NewFakeReader(time.Unix(1_700_000_000, 0))
		reader.FailOn(chain.MethodDecimals, errors.New("rpc down"))

		var out bytes.Buffer
		err := diagnose(context.Background(), &out, reader, nil, testPlayer, nil)
		require.Error(t, err)
		assert.Contains(t, out.String(), "token balance: ")
		assert.Contains(t, out.String(), "rpc down")
	})
}

func TestDecode_Example(t *testing.T) {
	cmd := newDecodeCmd()
	example := strings.Fields(cmd.Example)
	require.Len(t, example, 5)

	out, err := execute(t, example[1:]...)
	require.NoError(t, err)

	var got decodedCell
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, plotcodec.StatusPlanted, got.Status)
	assert.Equal(t, uint16(1), got.SeedType)
	assert.Equal(t, uint64(1700000000), got.PlantedAt)
	assert.Equal(t, uint32(60), got.GrowDuration)
	assert.True(t, got.Ready)
}

func TestDecode_ExplicitZeroNow(t *testing.T) {
	packed := plotcodec.MustEncode(plotcodec.CellState{
		Status: plotcodec.StatusPlanted, SeedType: 1, PlantedAt: 100, GrowDuration: 60,
	})

	out, err := execute(t, "decode", packed.Dec(), "--now", "0")
	require.NoError(t, err)

	var got decodedCell
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Ready, "--now 0 is a real instant, not the wall clock")
	assert.Equal(t, uint64(160), got.SecondsRemaining)
}

func TestMigrate_SQLite(t *testing.T) {
	path := t.TempDir() + "/garden.db"

	out, err := execute(t, "migrate", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied")

	// applying twice is a no-op
	_, err = execute(t, "migrate", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)

	_, err = execute(t, "migrate", "--driver", "mongo")
	assert.ErrorContains(t, err, "unsupported driver")
}
