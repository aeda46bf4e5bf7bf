package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract method names
const (
	MethodGetPlotCells  = "getPlotCells"
	MethodGetSeedConfig = "getSeedConfig"
	MethodPlotsLimitOf  = "plotsLimitOf"
	MethodPlant         = "plant"
	MethodHarvest       = "harvest"
	MethodBuySeeds      = "buySeeds"
	MethodSellCrops     = "sellCrops"
	MethodBalanceOf     = "balanceOf"
	MethodDecimals      = "decimals"
)

// gardenCoreABI carries only the GardenCore fragments this service reads or
// builds calldata for.
const gardenCoreABI = `[
  {"type":"function","name":"getPlotCells","stateMutability":"view",
   "inputs":[{"name":"player","type":"address"},{"name":"plotId","type":"uint256"}],
   "outputs":[{"name":"","type":"uint256[12]"}]},
  {"type":"function","name":"getSeedConfig","stateMutability":"view",
   "inputs":[{"name":"seedType","type":"uint16"}],
   "outputs":[{"name":"","type":"tuple","internalType":"struct GardenCore.SeedConfig","components":[
     {"name":"growDuration","type":"uint32"},
     {"name":"seedTokenId","type":"uint16"},
     {"name":"cropTokenId","type":"uint16"},
     {"name":"buyPriceWei","type":"uint96"},
     {"name":"sellPriceWei","type":"uint96"},
     {"name":"active","type":"bool"}]}]},
  {"type":"function","name":"plotsLimitOf","stateMutability":"view",
   "inputs":[{"name":"player","type":"address"}],
   "outputs":[{"name":"","type":"uint16"}]},
  {"type":"function","name":"plant","stateMutability":"nonpayable",
   "inputs":[{"name":"plotId","type":"uint16"},{"name":"cellId","type":"uint8"},{"name":"seedType","type":"uint16"}],
   "outputs":[]},
  {"type":"function","name":"harvest","stateMutability":"nonpayable",
   "inputs":[{"name":"plotId","type":"uint16"},{"name":"cellId","type":"uint8"}],
   "outputs":[]},
  {"type":"function","name":"buySeeds","stateMutability":"payable",
   "inputs":[{"name":"seedType","type":"uint16"},{"name":"qty","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"sellCrops","stateMutability":"nonpayable",
   "inputs":[{"name":"seedType","type":"uint16"},{"name":"qty","type":"uint256"}],
   "outputs":[]}
]`

const items1155ABI = `[
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],
   "outputs":[{"name":"","type":"uint256"}]}
]`

const erc20ABI = `[
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"account","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"decimals","stateMutability":"view",
   "inputs":[],
   "outputs":[{"name":"","type":"uint8"}]}
]`

// Contract ABIs are parsed once at start-up
var (
	GardenCoreABI = mustParse(gardenCoreABI)
	Items1155ABI  = mustParse(items1155ABI)
	ERC20ABI      = mustParse(erc20ABI)
)

// seedConfigTuple mirrors the GardenCore.SeedConfig struct returned by getSeedConfig
type seedConfigTuple struct {
	GrowDuration uint32
	SeedTokenId  uint16 //nolint:revive // field names follow the ABI component names
	CropTokenId  uint16 //nolint:revive
	BuyPriceWei  *big.Int
	SellPriceWei *big.Int
	Active       bool
}

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}
