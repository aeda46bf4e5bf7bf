package garden

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
	"github.com/osse101/GardenKeeper_Go/internal/seeds"
)

const (
	testPlayer     = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	testGardenCore = "0x1111111111111111111111111111111111111111"
)

var testNow = time.Unix(1_700_000_000, 0).UTC()

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

func carrotOnChain() domain.SeedConfig {
	return domain.SeedConfig{
		Type:         domain.SeedCarrot,
		GrowDuration: 60,
		SeedTokenID:  1001,
		CropTokenID:  2001,
		BuyPriceWei:  wei("1000000000000000"),
		SellPriceWei: wei("500000000000000"),
		Active:       true,
	}
}

func packed(t *testing.T, seed domain.SeedType, plantedAt uint64, grow uint32) *big.Int {
	t.Helper()
	v, err := plotcodec.Encode(plotcodec.CellState{
		Status:       plotcodec.StatusPlanted,
		SeedType:     uint16(seed),
		PlantedAt:    plantedAt,
		GrowDuration: grow,
	})
	require.NoError(t, err)
	return v.ToBig()
}

// setupService returns a service over a fake chain with:
// cell 0 ready carrot, cell 1 growing mint (5s left), other cells empty
func setupService(t *testing.T) (*chain.FakeReader, Service) {
	t.Helper()
	reader := chain.NewFakeReader(testNow)
	reader.SetPlotsLimit(testPlayer, 2)
	reader.SetSeedConfig(carrotOnChain())
	reader.SetCell(testPlayer, 0, 0, packed(t, domain.SeedCarrot, uint64(testNow.Unix())-70, 60))
	reader.SetCell(testPlayer, 0, 1, packed(t, domain.SeedMint, uint64(testNow.Unix())-5, 10))

	svc := NewService(reader, seeds.Default(), FixedClock{At: testNow}, Config{GardenCoreAddress: testGardenCore})
	return reader, svc
}

func TestGetPlot(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes and annotates cells", func(t *testing.T) {
		_, svc := setupService(t)

		view, err := svc.GetPlot(ctx, testPlayer, 0)
		require.NoError(t, err)

		assert.Equal(t, testPlayer, view.Player)
		assert.Equal(t, ClockBasisWall, view.ClockBasis)
		assert.Equal(t, 1, view.ReadyCount())

		carrot := view.Cells[0]
		assert.False(t, carrot.Empty)
		assert.True(t, carrot.Ready())
		assert.Equal(t, "Carrot", carrot.SeedName)
		assert.Zero(t, carrot.SecondsRemaining)
		require.NotNil(t, carrot.ReadyAt)
		assert.Equal(t, testNow.Add(-10*time.Second), *carrot.ReadyAt)

		mint := view.Cells[1]
		assert.False(t, mint.Ready())
		assert.Equal(t, "Mint", mint.SeedName)
		assert.Equal(t, uint64(5), mint.SecondsRemaining)
		assert.Equal(t, 0, mint.Row)
		assert.Equal(t, 1, mint.Column)

		last := view.Cells[11]
		assert.True(t, last.Empty)
		assert.Nil(t, last.State)
		assert.Equal(t, 2, last.Row)
		assert.Equal(t, 3, last.Column)
		assert.Equal(t, "0", view.Packed[11])
	})

	t.Run("lowercase address is checksummed", func(t *testing.T) {
		_, svc := setupService(t)

		view, err := svc.GetPlot(ctx, "0xabcdef0123456789abcdef0123456789abcdef01", 0)
		require.NoError(t, err)
		assert.Equal(t, testPlayer, view.Player)
	})

	t.Run("plot beyond limit is locked", func(t *testing.T) {
		reader, svc := setupService(t)

		_, err := svc.GetPlot(ctx, testPlayer, 2)
		assert.ErrorIs(t, err, domain.ErrPlotLocked)
		assert.Zero(t, reader.Calls(chain.MethodGetPlotCells))
	})

	t.Run("invalid player", func(t *testing.T) {
		_, svc := setupService(t)

		_, err := svc.GetPlot(ctx, "0x1234", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidPlayer)
	})

	t.Run("oversized cell value", func(t *testing.T) {
		reader, svc := setupService(t)
		reader.SetCell(testPlayer, 0, 4, new(big.Int).Lsh(big.NewInt(1), 200))

		_, err := svc.GetPlot(ctx, testPlayer, 0)
		assert.ErrorIs(t, err, plotcodec.ErrInvalidEncoding)
	})

	t.Run("rpc failure", func(t *testing.T) {
		reader, svc := setupService(t)
		reader.FailOn(chain.MethodGetPlotCells, errors.New("connection refused"))

		_, err := svc.GetPlot(ctx, testPlayer, 0)
		assert.ErrorIs(t, err, domain.ErrChainUnavailable)
	})

	t.Run("chain clock decides readiness", func(t *testing.T) {
		reader, _ := setupService(t)
		// head is behind the host clock, so the mint is still growing on chain
		reader.SetHead(testNow.Add(-3 * time.Second))
		svc := NewService(reader, seeds.Default(), NewChainClock(reader), Config{GardenCoreAddress: testGardenCore})

		view, err := svc.GetPlot(ctx, testPlayer, 0)
		require.NoError(t, err)
		assert.Equal(t, ClockBasisChain, view.ClockBasis)
		assert.Equal(t, uint64(8), view.Cells[1].SecondsRemaining)

		reader.SetHead(testNow.Add(10 * time.Second))
		view, err = svc.GetPlot(ctx, testPlayer, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, view.ReadyCount())
	})
}

func TestResolveClick(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		req        domain.ClickRequest
		balance    int64
		wantAction domain.CellAction
		wantMethod string
		wantErr    error
	}{
		{
			name:       "ready crop is harvested",
			req:        domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 0},
			wantAction: domain.ActionHarvest,
			wantMethod: chain.MethodHarvest,
		},
		{
			name:       "ready crop is harvested even with a seed selected",
			req:        domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 0, SeedType: domain.SeedCarrot},
			wantAction: domain.ActionHarvest,
			wantMethod: chain.MethodHarvest,
		},
		{
			name:       "growing crop is ignored",
			req:        domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 1, SeedType: domain.SeedCarrot},
			wantAction: domain.ActionIgnore,
		},
		{
			name:       "empty cell is planted",
			req:        domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 3, SeedType: domain.SeedCarrot},
			balance:    2,
			wantAction: domain.ActionPlant,
			wantMethod: chain.MethodPlant,
		},
		{
			name:    "empty cell without a seed",
			req:     domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 3},
			wantErr: domain.ErrSeedNotSelected,
		},
		{
			name:    "seed not active on chain",
			req:     domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 3, SeedType: domain.SeedMint},
			balance: 2,
			wantErr: domain.ErrSeedInactive,
		},
		{
			name:    "no seeds in wallet",
			req:     domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 3, SeedType: domain.SeedCarrot},
			wantErr: domain.ErrNoSeedBalance,
		},
		{
			name:    "cell out of range",
			req:     domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: domain.CellsPerPlot},
			wantErr: domain.ErrInvalidCell,
		},
		{
			name:    "locked plot",
			req:     domain.ClickRequest{Player: testPlayer, PlotID: 5, CellIndex: 0},
			wantErr: domain.ErrPlotLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, svc := setupService(t)
			reader.SetBalance(testPlayer, 1001, tt.balance)

			plan, err := svc.ResolveClick(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, plan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, plan.Action)
			assert.Equal(t, tt.req.CellIndex, plan.Cell.Index)

			if tt.wantMethod == "" {
				assert.Nil(t, plan.Call)
				return
			}
			require.NotNil(t, plan.Call)
			assert.Equal(t, tt.wantMethod, plan.Call.Method)
			assert.Equal(t, testGardenCore, plan.Call.To)
			assert.Zero(t, plan.Call.ValueWei.Sign())
		})
	}
}

func TestResolveClick_Calldata(t *testing.T) {
	ctx := context.Background()
	reader, svc := setupService(t)
	reader.SetBalance(testPlayer, 1001, 1)

	plan, err := svc.ResolveClick(ctx, domain.ClickRequest{Player: testPlayer, PlotID: 1, CellIndex: 7, SeedType: domain.SeedCarrot})
	require.NoError(t, err)

	want, err := chain.PackPlant(1, 7, domain.SeedCarrot)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(want), plan.Call.Calldata)
	assert.Equal(t, []string{"1", "7", "1"}, plan.Call.Args)
	assert.Equal(t, domain.ReasonEmptyCell, plan.Reason)

	plan, err = svc.ResolveClick(ctx, domain.ClickRequest{Player: testPlayer, PlotID: 0, CellIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonGrowing, plan.Reason)
	assert.Equal(t, uint64(5), plan.ReadyIn)
}

func TestInventory(t *testing.T) {
	ctx := context.Background()
	reader, svc := setupService(t)
	reader.SetBalance(testPlayer, 1001, 4)
	reader.SetBalance(testPlayer, 2001, 9)
	reader.SetBalance(testPlayer, 1003, 1)

	entries, err := svc.Inventory(ctx, testPlayer)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Carrot", entries[0].Name)
	assert.Equal(t, int64(4), entries[0].SeedBalance.Int64())
	assert.Equal(t, int64(9), entries[0].CropBalance.Int64())
	assert.Equal(t, int64(0), entries[1].SeedBalance.Int64())
	assert.Equal(t, int64(1), entries[2].SeedBalance.Int64())

	t.Run("balance failure", func(t *testing.T) {
		reader.FailOn(chain.MethodBalanceOf, errors.New("timeout"))
		_, err := svc.Inventory(ctx, testPlayer)
		assert.ErrorIs(t, err, domain.ErrChainUnavailable)
	})
}

func TestTokenBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("scales the raw balance", func(t *testing.T) {
		reader, svc := setupService(t)
		reader.SetTokenBalance(testPlayer, wei("2250000000000000000"))

		bal, err := svc.TokenBalance(ctx, "0xabcdef0123456789abcdef0123456789abcdef01")
		require.NoError(t, err)
		assert.Equal(t, testPlayer, bal.Player)
		assert.Equal(t, chain.FakeTokenAddress, bal.Token)
		assert.Equal(t, uint8(chain.FakeTokenDecimals), bal.Decimals)
		assert.Equal(t, "2.25", bal.Formatted)
	})

	t.Run("unknown player has zero", func(t *testing.T) {
		reader, svc := setupService(t)
		reader.SetTokenDecimals(6)

		bal, err := svc.TokenBalance(ctx, testPlayer)
		require.NoError(t, err)
		assert.Equal(t, 0, bal.Raw.Sign())
		assert.Equal(t, "0", bal.Formatted)
	})

	tests := []struct {
		name    string
		player  string
		setup   func(*chain.FakeReader)
		wantErr error
	}{
		{"invalid player", "0x12", nil, domain.ErrInvalidPlayer},
		{"token not configured", testPlayer, func(r *chain.FakeReader) { r.DisableToken() }, domain.ErrTokenNotConfigured},
		{"rpc failure", testPlayer, func(r *chain.FakeReader) { r.FailOn(chain.MethodDecimals, errors.New("timeout")) }, domain.ErrChainUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, svc := setupService(t)
			if tt.setup != nil {
				tt.setup(reader)
			}
			_, err := svc.TokenBalance(ctx, tt.player)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSeedList(t *testing.T) {
	ctx := context.Background()
	reader, svc := setupService(t)

	list, err := svc.SeedList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Carrot", list[0].Name)
	assert.True(t, list[0].Active)
	assert.Equal(t, "1000000000000000", list[0].BuyPriceWei.String())

	// mint and sage were never configured on chain
	assert.False(t, list[1].Active)
	assert.Equal(t, "Mint", list[1].Name)
	assert.Equal(t, uint32(10), list[1].GrowDuration)
	assert.False(t, list[2].Active)

	_, err = svc.SeedList(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, reader.Calls(chain.MethodGetSeedConfig), "second listing should be served from cache")

	t.Run("purge picks up a reconfigured seed", func(t *testing.T) {
		reader.SetSeedConfig(domain.SeedConfig{
			Type:         domain.SeedMint,
			GrowDuration: 15,
			SeedTokenID:  1002,
			CropTokenID:  2002,
			BuyPriceWei:  wei("1"),
			SellPriceWei: wei("1"),
			Active:       true,
		})

		list, err := svc.SeedList(ctx)
		require.NoError(t, err)
		assert.False(t, list[1].Active, "still cached")

		assert.Equal(t, 3, svc.PurgeSeedCache())
		assert.Zero(t, svc.PurgeSeedCache())

		list, err = svc.SeedList(ctx)
		require.NoError(t, err)
		assert.True(t, list[1].Active)
		assert.Equal(t, uint32(15), list[1].GrowDuration)
		assert.Equal(t, 6, reader.Calls(chain.MethodGetSeedConfig))
	})
}

func TestSeedConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("on-chain values override the catalog", func(t *testing.T) {
		reader, svc := setupService(t)
		sage := domain.SeedConfig{
			Type: domain.SeedSage, GrowDuration: 25, SeedTokenID: 1003, CropTokenID: 2003,
			BuyPriceWei: wei("2000000000000000"), SellPriceWei: wei("1000000000000000"), Active: true,
		}
		reader.SetSeedConfig(sage)

		cfg, err := svc.SeedConfig(ctx, domain.SeedSage)
		require.NoError(t, err)
		assert.Equal(t, "Sage", cfg.Name)
		assert.Equal(t, uint32(25), cfg.GrowDuration)
		assert.Equal(t, sage.BuyPriceWei, cfg.BuyPriceWei)
	})

	t.Run("unknown seeds", func(t *testing.T) {
		_, svc := setupService(t)

		_, err := svc.SeedConfig(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrSeedNotFound)

		_, err = svc.SeedConfig(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrSeedNotFound)
	})

	t.Run("seed only known on chain", func(t *testing.T) {
		reader, svc := setupService(t)
		reader.SetSeedConfig(domain.SeedConfig{Type: 7, GrowDuration: 30, SeedTokenID: 1007, CropTokenID: 2007, Active: true})

		cfg, err := svc.SeedConfig(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Seed #7", cfg.Name)
		assert.True(t, cfg.Active)
		assert.NotNil(t, cfg.BuyPriceWei)
	})
}

func TestMergeSeedConfig(t *testing.T) {
	static := domain.SeedConfig{Type: 2, Name: "Mint", GrowDuration: 10, SeedTokenID: 1002, CropTokenID: 2002, Active: true}

	merged := MergeSeedConfig(static, domain.SeedConfig{Type: 2})
	assert.False(t, merged.Active, "unset on-chain config disables the seed")
	assert.Equal(t, uint32(10), merged.GrowDuration)
	assert.NotNil(t, merged.BuyPriceWei)

	merged = MergeSeedConfig(static, domain.SeedConfig{Type: 2, GrowDuration: 12, SeedTokenID: 1002, CropTokenID: 2002, Active: false})
	assert.False(t, merged.Active)
	assert.Equal(t, uint32(12), merged.GrowDuration)
	assert.Equal(t, "Mint", merged.Name)
}

func TestQuotes(t *testing.T) {
	ctx := context.Background()

	t.Run("buy", func(t *testing.T) {
		_, svc := setupService(t)

		quote, err := svc.QuoteBuySeeds(ctx, domain.SeedCarrot, 3)
		require.NoError(t, err)
		assert.Equal(t, "3000000000000000", quote.TotalWei.String())
		assert.Equal(t, "1000000000000000", quote.UnitWei.String())
		assert.Equal(t, chain.MethodBuySeeds, quote.Call.Method)
		assert.Equal(t, quote.TotalWei, quote.Call.ValueWei)
		assert.Equal(t, []string{"1", "3"}, quote.Call.Args)

		want, err := chain.PackBuySeeds(domain.SeedCarrot, 3)
		require.NoError(t, err)
		assert.Equal(t, hexutil.Encode(want), quote.Call.Calldata)
	})

	t.Run("sell", func(t *testing.T) {
		_, svc := setupService(t)

		quote, err := svc.QuoteSellCrops(ctx, domain.SeedCarrot, 4)
		require.NoError(t, err)
		assert.Equal(t, "2000000000000000", quote.TotalWei.String())
		assert.Equal(t, chain.MethodSellCrops, quote.Call.Method)
		assert.Zero(t, quote.Call.ValueWei.Sign())
	})

	t.Run("rejections", func(t *testing.T) {
		_, svc := setupService(t)

		_, err := svc.QuoteBuySeeds(ctx, domain.SeedCarrot, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

		_, err = svc.QuoteSellCrops(ctx, domain.SeedCarrot, -2)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

		_, err = svc.QuoteBuySeeds(ctx, domain.SeedMint, 1)
		assert.ErrorIs(t, err, domain.ErrSeedInactive)
	})
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(domain.ErrPlotLocked))
	assert.True(t, IsClientError(errors.Join(errors.New("ctx"), domain.ErrNoSeedBalance)))
	assert.True(t, IsClientError(domain.ErrWatchLimitReached))
	assert.False(t, IsClientError(domain.ErrChainUnavailable))
	assert.False(t, IsClientError(domain.ErrTokenNotConfigured))
	assert.False(t, IsClientError(errors.New("boom")))
}

func TestNewClock(t *testing.T) {
	reader := chain.NewFakeReader(testNow)

	c, err := NewClock("", reader)
	require.NoError(t, err)
	assert.Equal(t, ClockBasisWall, c.Basis())

	c, err = NewClock(ClockBasisChain, reader)
	require.NoError(t, err)
	now, err := c.Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testNow, now)

	_, err = NewClock("sundial", reader)
	assert.Error(t, err)
}
