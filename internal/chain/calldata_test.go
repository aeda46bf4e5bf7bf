package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

func TestPackPlant(t *testing.T) {
	data, err := PackPlant(1, 11, domain.SeedSage)
	require.NoError(t, err)

	method := GardenCoreABI.Methods[MethodPlant]
	assert.Equal(t, method.ID, data[:4])

	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint16(1), uint8(11), uint16(3)}, args)
}

func TestPackHarvest(t *testing.T) {
	data, err := PackHarvest(0, 4)
	require.NoError(t, err)

	args, err := GardenCoreABI.Methods[MethodHarvest].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint16(0), uint8(4)}, args)
}

func TestPackRejectsBadCells(t *testing.T) {
	for _, cell := range []int{-1, domain.CellsPerPlot, 255} {
		_, err := PackPlant(0, cell, domain.SeedMint)
		assert.ErrorIs(t, err, domain.ErrInvalidCell)
		_, err = PackHarvest(0, cell)
		assert.ErrorIs(t, err, domain.ErrInvalidCell)
	}
}

func TestPackTrades(t *testing.T) {
	data, err := PackBuySeeds(domain.SeedMint, 3)
	require.NoError(t, err)
	args, err := GardenCoreABI.Methods[MethodBuySeeds].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	assert.Equal(t, uint16(2), args[0])
	assert.Equal(t, int64(3), args[1].(*big.Int).Int64())

	data, err = PackSellCrops(domain.SeedCarrot, 5)
	require.NoError(t, err)
	assert.Equal(t, GardenCoreABI.Methods[MethodSellCrops].ID, data[:4])

	_, err = PackBuySeeds(domain.SeedMint, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = PackSellCrops(domain.SeedMint, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestNewContractCall(t *testing.T) {
	data, err := PackBuySeeds(domain.SeedCarrot, 2)
	require.NoError(t, err)

	call := NewContractCall(testCore, MethodBuySeeds, data, big.NewInt(2000), domain.SeedCarrot, int64(2))

	assert.Equal(t, testCore, call.To)
	assert.Equal(t, []string{"1", "2"}, call.Args)
	assert.Equal(t, hexutil.Encode(data), call.Calldata)
	assert.Equal(t, int64(2000), call.ValueWei.Int64())

	free := NewContractCall(testCore, MethodHarvest, []byte{0x01}, nil)
	assert.Equal(t, 0, free.ValueWei.Sign())
	assert.Empty(t, free.Args)
}
