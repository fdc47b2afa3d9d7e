// Package format describes the pixel formats known to the screen layer.
//
// Every format carries its block geometry (1x1 for plain formats, 4x4 for
// block-compressed ones) and the byte size of one block. The surface layout
// engine consumes only this geometry; sampling and channel decoding are the
// rasterizer's concern.
package format

import "errors"

// ErrUnsupported is returned when a format has no block-size information.
// Callers hitting this passed a format the screen layer does not know about;
// it is a precondition violation rather than a runtime fault.
var ErrUnsupported = errors.New("format: no block-size information")

// Format identifies a pixel format.
//
// The zero value FormatUndefined is not a valid format; lookups against it
// fail with ErrUnsupported.
type Format uint8

const (
	// FormatUndefined is the invalid zero format.
	FormatUndefined Format = iota

	// Color, 8-bit channels.
	R8Unorm
	R8Uint
	RG8Unorm
	RGBA8Unorm
	RGBA8Srgb
	BGRA8Unorm
	BGRA8Srgb

	// Color, 16-bit channels.
	R16Unorm
	R16Uint
	R16Float
	RG16Float
	RGBA16Unorm
	RGBA16Float

	// Color, 32-bit channels.
	R32Uint
	R32Float
	RG32Uint
	RG32Float
	RGB32Float
	RGBA32Uint
	RGBA32Float

	// Packed color.
	B5G6R5Unorm
	B5G5R5A1Unorm
	RGB10A2Unorm
	R11G11B10Float

	// Depth/stencil.
	Z16Unorm
	Z24S8Uint
	Z24X8Unorm
	Z32Float
	Z32FloatS8X24Uint
	S8Uint

	// Block compressed, 4x4 blocks.
	BC1Unorm
	BC2Unorm
	BC3Unorm
	BC4Unorm
	BC5Unorm
	BC7Unorm
	ETC1RGB8
	ASTC4x4Unorm

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Layout classifies the storage scheme of a format. The screen rejects
// sampling from layout classes the rasterizer has no decoder for.
type Layout uint8

const (
	// LayoutPlain is an uncompressed linear layout.
	LayoutPlain Layout = iota

	// LayoutS3TC covers BC1-BC3 (DXT) compression.
	LayoutS3TC

	// LayoutRGTC covers BC4/BC5 red/red-green compression.
	LayoutRGTC

	// LayoutBPTC covers BC6H/BC7 compression.
	LayoutBPTC

	// LayoutETC covers ETC1/ETC2 compression.
	LayoutETC

	// LayoutASTC covers ASTC compression.
	LayoutASTC
)

// Info contains the capability-table entry for a format.
type Info struct {
	// BlockWidth is the width of one block in pixels (1 for plain formats).
	BlockWidth int

	// BlockHeight is the height of one block in pixels (1 for plain formats).
	BlockHeight int

	// BlockBytes is the byte size of one block (bytes per pixel for plain
	// formats).
	BlockBytes int

	// Layout is the storage scheme class.
	Layout Layout

	// HasDepth indicates the format carries a depth channel.
	HasDepth bool

	// HasStencil indicates the format carries a stencil channel.
	HasStencil bool

	// SRGB indicates non-linear sRGB encoding.
	SRGB bool

	// Renderable indicates the rasterizer has a native tile store for the
	// format. Non-renderable formats are substituted for offset math.
	Renderable bool
}

// infoTable holds the capability entry for every known format.
var infoTable = [formatCount]Info{
	R8Unorm:    {BlockWidth: 1, BlockHeight: 1, BlockBytes: 1, Renderable: true},
	R8Uint:     {BlockWidth: 1, BlockHeight: 1, BlockBytes: 1, Renderable: true},
	RG8Unorm:   {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, Renderable: true},
	RGBA8Unorm: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},
	RGBA8Srgb:  {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, SRGB: true, Renderable: true},
	BGRA8Unorm: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},
	BGRA8Srgb:  {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, SRGB: true, Renderable: true},

	R16Unorm:    {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, Renderable: true},
	R16Uint:     {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, Renderable: true},
	R16Float:    {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, Renderable: true},
	RG16Float:   {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},
	RGBA16Unorm: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 8, Renderable: true},
	RGBA16Float: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 8, Renderable: true},

	R32Uint:     {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},
	R32Float:    {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},
	RG32Uint:    {BlockWidth: 1, BlockHeight: 1, BlockBytes: 8, Renderable: true},
	RG32Float:   {BlockWidth: 1, BlockHeight: 1, BlockBytes: 8, Renderable: true},
	RGB32Float:  {BlockWidth: 1, BlockHeight: 1, BlockBytes: 12, Renderable: true},
	RGBA32Uint:  {BlockWidth: 1, BlockHeight: 1, BlockBytes: 16, Renderable: true},
	RGBA32Float: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 16, Renderable: true},

	B5G6R5Unorm:    {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, Renderable: true},
	B5G5R5A1Unorm:  {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, Renderable: true},
	RGB10A2Unorm:   {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},
	R11G11B10Float: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, Renderable: true},

	Z16Unorm:          {BlockWidth: 1, BlockHeight: 1, BlockBytes: 2, HasDepth: true, Renderable: true},
	Z24S8Uint:         {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, HasDepth: true, HasStencil: true, Renderable: true},
	Z24X8Unorm:        {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, HasDepth: true, Renderable: true},
	Z32Float:          {BlockWidth: 1, BlockHeight: 1, BlockBytes: 4, HasDepth: true, Renderable: true},
	Z32FloatS8X24Uint: {BlockWidth: 1, BlockHeight: 1, BlockBytes: 8, HasDepth: true, HasStencil: true, Renderable: true},
	S8Uint:            {BlockWidth: 1, BlockHeight: 1, BlockBytes: 1, HasStencil: true},

	BC1Unorm:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 8, Layout: LayoutS3TC},
	BC2Unorm:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 16, Layout: LayoutS3TC},
	BC3Unorm:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 16, Layout: LayoutS3TC},
	BC4Unorm:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 8, Layout: LayoutRGTC},
	BC5Unorm:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 16, Layout: LayoutRGTC},
	BC7Unorm:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 16, Layout: LayoutBPTC},
	ETC1RGB8:     {BlockWidth: 4, BlockHeight: 4, BlockBytes: 8, Layout: LayoutETC},
	ASTC4x4Unorm: {BlockWidth: 4, BlockHeight: 4, BlockBytes: 16, Layout: LayoutASTC},
}

// Info returns the capability entry for this format.
// The zero Info (BlockBytes == 0) is returned for unknown formats.
func (f Format) Info() Info {
	if !f.IsValid() {
		return Info{}
	}
	return infoTable[f]
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f > FormatUndefined && f < formatCount
}

// BlockWidth returns the block width in pixels.
func (f Format) BlockWidth() int { return f.Info().BlockWidth }

// BlockHeight returns the block height in pixels.
func (f Format) BlockHeight() int { return f.Info().BlockHeight }

// BlockBytes returns the byte size of one block.
func (f Format) BlockBytes() int { return f.Info().BlockBytes }

// Compressed returns true if the format stores pixels in blocks larger
// than 1x1.
func (f Format) Compressed() bool {
	info := f.Info()
	return info.BlockWidth > 1 || info.BlockHeight > 1
}

// HasDepth returns true if the format carries a depth channel.
func (f Format) HasDepth() bool { return f.Info().HasDepth }

// HasStencil returns true if the format carries a stencil channel.
func (f Format) HasStencil() bool { return f.Info().HasStencil }

// IsDepthStencil returns true if the format carries depth or stencil data.
func (f Format) IsDepthStencil() bool {
	info := f.Info()
	return info.HasDepth || info.HasStencil
}

// Renderable returns true if the rasterizer can store tiles of this format
// natively.
func (f Format) Renderable() bool { return f.Info().Renderable }

// NumBlocksX returns the number of blocks covering width pixels.
func (f Format) NumBlocksX(width int) int {
	bw := f.Info().BlockWidth
	if bw == 0 {
		return 0
	}
	return (width + bw - 1) / bw
}

// NumBlocksY returns the number of block rows covering height pixels.
func (f Format) NumBlocksY(height int) int {
	bh := f.Info().BlockHeight
	if bh == 0 {
		return 0
	}
	return (height + bh - 1) / bh
}

// Stride returns the byte size of one block row covering width pixels.
func (f Format) Stride(width int) int {
	return f.NumBlocksX(width) * f.Info().BlockBytes
}

// String returns the format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		if name := formatNames[f]; name != "" {
			return name
		}
	}
	return "Undefined"
}

var formatNames = [formatCount]string{
	R8Unorm:    "R8Unorm",
	R8Uint:     "R8Uint",
	RG8Unorm:   "RG8Unorm",
	RGBA8Unorm: "RGBA8Unorm",
	RGBA8Srgb:  "RGBA8Srgb",
	BGRA8Unorm: "BGRA8Unorm",
	BGRA8Srgb:  "BGRA8Srgb",

	R16Unorm:    "R16Unorm",
	R16Uint:     "R16Uint",
	R16Float:    "R16Float",
	RG16Float:   "RG16Float",
	RGBA16Unorm: "RGBA16Unorm",
	RGBA16Float: "RGBA16Float",

	R32Uint:     "R32Uint",
	R32Float:    "R32Float",
	RG32Uint:    "RG32Uint",
	RG32Float:   "RG32Float",
	RGB32Float:  "RGB32Float",
	RGBA32Uint:  "RGBA32Uint",
	RGBA32Float: "RGBA32Float",

	B5G6R5Unorm:    "B5G6R5Unorm",
	B5G5R5A1Unorm:  "B5G5R5A1Unorm",
	RGB10A2Unorm:   "RGB10A2Unorm",
	R11G11B10Float: "R11G11B10Float",

	Z16Unorm:          "Z16Unorm",
	Z24S8Uint:         "Z24S8Uint",
	Z24X8Unorm:        "Z24X8Unorm",
	Z32Float:          "Z32Float",
	Z32FloatS8X24Uint: "Z32FloatS8X24Uint",
	S8Uint:            "S8Uint",

	BC1Unorm:     "BC1Unorm",
	BC2Unorm:     "BC2Unorm",
	BC3Unorm:     "BC3Unorm",
	BC4Unorm:     "BC4Unorm",
	BC5Unorm:     "BC5Unorm",
	BC7Unorm:     "BC7Unorm",
	ETC1RGB8:     "ETC1RGB8",
	ASTC4x4Unorm: "ASTC4x4Unorm",
}

// Minify returns dim halved level times, clamped to 1.
// It is the standard mip-chain dimension rule.
func Minify(dim, level int) int {
	dim >>= level
	if dim < 1 {
		return 1
	}
	return dim
}
