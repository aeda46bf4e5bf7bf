package plotcodec

// Bit layout of a packed plot cell
const (
	StatusShift       = 0
	SeedTypeShift     = 2
	PlantedAtShift    = 16
	GrowDurationShift = 80

	StatusBits       = 2
	SeedTypeBits     = 14
	PlantedAtBits    = 64
	GrowDurationBits = 32

	// EncodedBits is the number of meaningful bits in a packed cell
	EncodedBits = GrowDurationShift + GrowDurationBits
)

// Field limits
const (
	MaxStatus   = 1<<StatusBits - 1
	MaxSeedType = 1<<SeedTypeBits - 1
)

// Cell status values
const (
	StatusEmpty   uint8 = 0
	StatusPlanted uint8 = 1
)

// Error messages
const (
	ErrMsgInvalidEncoding = "invalid cell encoding"
)
