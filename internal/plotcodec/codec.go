// Package plotcodec decodes the packed integer GardenCore stores for every plot cell.
//
// Layout (least significant bit first):
//
//	[0..1]     status
//	[2..15]    seed type
//	[16..79]   planted-at unix seconds
//	[80..111]  grow duration in seconds
//
// The value spans more than 64 bits, so all arithmetic runs on a 256-bit integer.
package plotcodec

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// ErrInvalidEncoding is returned for values that do not fit the packed layout
var ErrInvalidEncoding = errors.New(ErrMsgInvalidEncoding)

// CellState is the decoded view of a planted cell
type CellState struct {
	Status       uint8  `json:"status"`
	SeedType     uint16 `json:"seed_type"`
	PlantedAt    uint64 `json:"planted_at"`
	GrowDuration uint32 `json:"grow_duration"`
	Ready        bool   `json:"ready"`
}

// ReadyAt returns the unix second at which the crop can be harvested.
// Saturates at math.MaxUint64.
func (s CellState) ReadyAt() uint64 {
	readyAt := s.PlantedAt + uint64(s.GrowDuration)
	if readyAt < s.PlantedAt {
		return math.MaxUint64
	}
	return readyAt
}

// IsReadyAt reports whether the crop is harvestable at nowSeconds
func (s CellState) IsReadyAt(nowSeconds int64) bool {
	if nowSeconds < 0 {
		return false
	}
	now := uint64(nowSeconds)
	return now >= s.PlantedAt && now-s.PlantedAt >= uint64(s.GrowDuration)
}

// SecondsRemaining returns how long until the crop is ready, 0 once it is
func (s CellState) SecondsRemaining(nowSeconds int64) uint64 {
	if s.IsReadyAt(nowSeconds) {
		return 0
	}
	if nowSeconds < 0 {
		return s.ReadyAt()
	}
	return s.ReadyAt() - uint64(nowSeconds)
}

// Decode unpacks a cell. A zero value is an empty cell and yields (nil, nil).
func Decode(packed *uint256.Int, nowSeconds int64) (*CellState, error) {
	if packed == nil {
		return nil, fmt.Errorf("%w: nil value", ErrInvalidEncoding)
	}
	if packed.IsZero() {
		return nil, nil
	}
	if bits := packed.BitLen(); bits > EncodedBits {
		return nil, fmt.Errorf("%w: value uses %d bits, layout allows %d", ErrInvalidEncoding, bits, EncodedBits)
	}

	state := &CellState{
		Status:       uint8(field(packed, StatusShift, StatusBits)),
		SeedType:     uint16(field(packed, SeedTypeShift, SeedTypeBits)),
		PlantedAt:    field(packed, PlantedAtShift, PlantedAtBits),
		GrowDuration: uint32(field(packed, GrowDurationShift, GrowDurationBits)),
	}
	state.Ready = state.IsReadyAt(nowSeconds)
	return state, nil
}

// DecodeBig unpacks a cell returned by an ABI call as *big.Int
func DecodeBig(packed *big.Int, nowSeconds int64) (*CellState, error) {
	if packed == nil {
		return nil, fmt.Errorf("%w: nil value", ErrInvalidEncoding)
	}
	if packed.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", ErrInvalidEncoding, packed.String())
	}
	v, overflow := uint256.FromBig(packed)
	if overflow {
		return nil, fmt.Errorf("%w: value exceeds 256 bits", ErrInvalidEncoding)
	}
	return Decode(v, nowSeconds)
}

// Parse reads a packed cell from decimal or 0x-prefixed hex text
func Parse(text string) (*uint256.Int, error) {
	text = strings.TrimSpace(text)
	b, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidEncoding, text)
	}
	if b.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", ErrInvalidEncoding, text)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: value exceeds 256 bits", ErrInvalidEncoding)
	}
	return v, nil
}

// Encode packs a cell state. Ready is derived and ignored.
func Encode(state CellState) (*uint256.Int, error) {
	if state.Status > MaxStatus {
		return nil, fmt.Errorf("%w: status %d exceeds %d", ErrInvalidEncoding, state.Status, MaxStatus)
	}
	if state.SeedType > MaxSeedType {
		return nil, fmt.Errorf("%w: seed type %d exceeds %d", ErrInvalidEncoding, state.SeedType, MaxSeedType)
	}

	packed := uint256.NewInt(uint64(state.Status))
	packed.Or(packed, shifted(uint64(state.SeedType), SeedTypeShift))
	packed.Or(packed, shifted(state.PlantedAt, PlantedAtShift))
	packed.Or(packed, shifted(uint64(state.GrowDuration), GrowDurationShift))
	return packed, nil
}

// MustEncode is Encode for literals known to be in range
func MustEncode(state CellState) *uint256.Int {
	packed, err := Encode(state)
	if err != nil {
		panic(err)
	}
	return packed
}

func field(packed *uint256.Int, shift, width uint) uint64 {
	low := new(uint256.Int).Rsh(packed, shift).Uint64()
	if width >= 64 {
		return low
	}
	return low & (1<<width - 1)
}

func shifted(v uint64, shift uint) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(v), shift)
}
