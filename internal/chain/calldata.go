package chain

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

// PackPlant encodes plant(plotId, cellId, seedType)
func PackPlant(plotID uint16, cellIndex int, seedType domain.SeedType) ([]byte, error) {
	if err := checkCell(cellIndex); err != nil {
		return nil, err
	}
	return GardenCoreABI.Pack(MethodPlant, plotID, uint8(cellIndex), uint16(seedType))
}

// PackHarvest encodes harvest(plotId, cellId)
func PackHarvest(plotID uint16, cellIndex int) ([]byte, error) {
	if err := checkCell(cellIndex); err != nil {
		return nil, err
	}
	return GardenCoreABI.Pack(MethodHarvest, plotID, uint8(cellIndex))
}

// PackBuySeeds encodes buySeeds(seedType, qty)
func PackBuySeeds(seedType domain.SeedType, qty int64) ([]byte, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	return GardenCoreABI.Pack(MethodBuySeeds, uint16(seedType), big.NewInt(qty))
}

// PackSellCrops encodes sellCrops(seedType, qty)
func PackSellCrops(seedType domain.SeedType, qty int64) ([]byte, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	return GardenCoreABI.Pack(MethodSellCrops, uint16(seedType), big.NewInt(qty))
}

// NewContractCall wraps packed calldata for a wallet to sign
func NewContractCall(to, method string, data []byte, value *big.Int, args ...any) *domain.ContractCall {
	if value == nil {
		value = new(big.Int)
	}
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = renderArg(a)
	}
	return &domain.ContractCall{
		To:       to,
		Method:   method,
		Args:     rendered,
		Calldata: hexutil.Encode(data),
		ValueWei: value,
	}
}

func renderArg(a any) string {
	switch v := a.(type) {
	case *big.Int:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case domain.SeedType:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func checkCell(cellIndex int) error {
	if cellIndex < 0 || cellIndex >= domain.CellsPerPlot {
		return fmt.Errorf("%w: %d", domain.ErrInvalidCell, cellIndex)
	}
	return nil
}
