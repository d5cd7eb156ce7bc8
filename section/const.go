package section

const (
	// Bit masks of KeyFlag.Options.
	SortedMask       = 0x0001 // bit 0: keys are in ascending order
	EndiannessMask   = 0x0002 // bit 1: 0 little-endian, 1 big-endian
	ReservedBitsMask = 0x000C // bits 2-3: must be zero
	MagicNumberMask  = 0xFFF0 // bits 4-15: magic number

	// MagicKeyV1Opt identifies version 1 of the Morton key blob format.
	MagicKeyV1Opt = 0xEC10
)

// Byte offsets of the key blob header fields.
const (
	HeaderSize = 32 // fixed header size in bytes

	optionsOffset     = 0
	encodingOffset    = 2
	compressionOffset = 3
	depthOffset       = 4
	countOffset       = 8
	payloadSizeOffset = 16
	rawSizeOffset     = 20
	checksumOffset    = 24

	// PayloadOffset is where the key payload starts.
	PayloadOffset = HeaderSize
)
