package surface

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/screen/format"
)

func TestComputeLayout_SingleLevel(t *testing.T) {
	// A render-target sized 257x130 with macrotile alignment rounds up to
	// 288x160 pixels.
	layout, err := ComputeLayout(Descriptor{
		Width:  257,
		Height: 130,
		Depth:  1,
		Format: format.RGBA8Unorm,
		Levels: 1,
		Dim:    Tex2D,
		HAlign: MacrotileWidth,
		VAlign: MacrotileHeight,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.Pitch != 288*4 {
		t.Errorf("Pitch = %d, want %d", layout.Pitch, 288*4)
	}
	if layout.QPitch != 160 {
		t.Errorf("QPitch = %d, want 160", layout.QPitch)
	}
	if want := uint64(288 * 4 * 160); layout.TotalSize != want {
		t.Errorf("TotalSize = %d, want %d", layout.TotalSize, want)
	}
	if len(layout.LevelOffsets) != 1 || layout.LevelOffsets[0] != 0 {
		t.Errorf("LevelOffsets = %v, want [0]", layout.LevelOffsets)
	}
}

func TestComputeLayout_Staircase(t *testing.T) {
	// 16x16 with five levels and no alignment. Level 1 (8 rows) is taller
	// than the stacked tail of levels 2..4 (4+2+1 rows), so it sizes the
	// lower half.
	layout, err := ComputeLayout(Descriptor{
		Width:  16,
		Height: 16,
		Depth:  1,
		Format: format.RGBA8Unorm,
		Levels: 5,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.Pitch != 16*4 {
		t.Errorf("Pitch = %d, want %d", layout.Pitch, 16*4)
	}
	if layout.QPitch != 24 {
		t.Errorf("QPitch = %d, want 24", layout.QPitch)
	}
	want := []uint64{
		0,
		16 * 64,        // level 1 at (0, 16)
		16*64 + 8*4,    // level 2 at (8, 16)
		20*64 + 8*4,    // level 3 at (8, 20)
		22*64 + 8*4,    // level 4 at (8, 22)
	}
	if !reflect.DeepEqual(layout.LevelOffsets, want) {
		t.Errorf("LevelOffsets = %v, want %v", layout.LevelOffsets, want)
	}
}

func TestComputeLayout_PitchWidensForNarrowChain(t *testing.T) {
	// With halign 32 a 16-wide base aligns to 32, but levels 1 and 2 side
	// by side align to 32 each and need 64.
	layout, err := ComputeLayout(Descriptor{
		Width:  16,
		Height: 16,
		Depth:  1,
		Format: format.R8Unorm,
		Levels: 3,
		Dim:    Tex2D,
		HAlign: 32,
		VAlign: 32,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.Pitch != 64 {
		t.Errorf("Pitch = %d, want 64", layout.Pitch)
	}
	if layout.QPitch != 64 {
		t.Errorf("QPitch = %d, want 64", layout.QPitch)
	}
	want := []uint64{0, 32 * 64, 32*64 + 32}
	if !reflect.DeepEqual(layout.LevelOffsets, want) {
		t.Errorf("LevelOffsets = %v, want %v", layout.LevelOffsets, want)
	}
}

func TestComputeLayout_TwoLevelTailQuirk(t *testing.T) {
	// A two-level chain reserves level 1's full rows below level 0 even
	// though no levels stack beside it. Pinned: stored surfaces depend on
	// this height.
	layout, err := ComputeLayout(Descriptor{
		Width:  16,
		Height: 16,
		Depth:  1,
		Format: format.RGBA8Unorm,
		Levels: 2,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.QPitch != 24 {
		t.Errorf("QPitch = %d, want 24", layout.QPitch)
	}
	if layout.LevelOffsets[1] != 16*16*4 {
		t.Errorf("LevelOffsets[1] = %d, want %d", layout.LevelOffsets[1], 16*16*4)
	}
}

func TestComputeLayout_1D(t *testing.T) {
	layout, err := ComputeLayout(Descriptor{
		Width:  100,
		Height: 1,
		Depth:  3,
		Format: format.RGBA8Unorm,
		Levels: 3,
		Dim:    Tex1DArray,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.Pitch != 4 {
		t.Errorf("Pitch = %d, want 4", layout.Pitch)
	}
	// Levels sit side by side: 100 + 50 + 25 elements.
	if layout.QPitch != 175 {
		t.Errorf("QPitch = %d, want 175", layout.QPitch)
	}
	want := []uint64{0, 400, 600}
	if !reflect.DeepEqual(layout.LevelOffsets, want) {
		t.Errorf("LevelOffsets = %v, want %v", layout.LevelOffsets, want)
	}
	if got := layout.SliceOffset(2, 1); got != 2*175*4+400 {
		t.Errorf("SliceOffset(2, 1) = %d, want %d", got, 2*175*4+400)
	}
	if want := uint64(3 * 175 * 4); layout.TotalSize != want {
		t.Errorf("TotalSize = %d, want %d", layout.TotalSize, want)
	}
}

func TestComputeLayout_Cube(t *testing.T) {
	layout, err := ComputeLayout(Descriptor{
		Width:  64,
		Height: 64,
		Depth:  6,
		Format: format.RGBA8Unorm,
		Levels: 1,
		Dim:    TexCube,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	faceBytes := uint64(layout.QPitch) * uint64(layout.Pitch)
	if want := 6 * faceBytes; layout.TotalSize != want {
		t.Errorf("TotalSize = %d, want %d", layout.TotalSize, want)
	}
	for face := 0; face < 6; face++ {
		if got := layout.SliceOffset(face, 0); got != uint64(face)*faceBytes {
			t.Errorf("SliceOffset(%d, 0) = %d, want %d", face, got, uint64(face)*faceBytes)
		}
	}
}

func TestComputeLayout_StencilOnlyUsesR8(t *testing.T) {
	layout, err := ComputeLayout(Descriptor{
		Width:  64,
		Height: 64,
		Depth:  1,
		Format: format.S8Uint,
		Levels: 1,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.Format != format.R8Uint {
		t.Errorf("Format = %v, want R8Uint", layout.Format)
	}
	if layout.Pitch != 64 {
		t.Errorf("Pitch = %d, want 64", layout.Pitch)
	}
}

func TestComputeLayout_SubstituteKeepsAddressing(t *testing.T) {
	// BC3 has no native rasterizer support; addressing falls back to BC5,
	// which shares its block geometry, so offsets are unchanged.
	layout, err := ComputeLayout(Descriptor{
		Width:  64,
		Height: 64,
		Depth:  1,
		Format: format.BC3Unorm,
		Levels: 2,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if layout.Effective != format.BC5Unorm {
		t.Errorf("Effective = %v, want BC5Unorm", layout.Effective)
	}
	if layout.Format != format.BC3Unorm {
		t.Errorf("Format = %v, want BC3Unorm", layout.Format)
	}
	if layout.Pitch != 16*16 {
		t.Errorf("Pitch = %d, want %d", layout.Pitch, 16*16)
	}
	// Level 1 starts 64 pixel rows down, i.e. 16 block rows.
	if want := uint64(16 * 16 * 16); layout.LevelOffsets[1] != want {
		t.Errorf("LevelOffsets[1] = %d, want %d", layout.LevelOffsets[1], want)
	}
}

func TestComputeLayout_SizeCap(t *testing.T) {
	desc := Descriptor{
		Width:  32768,
		Height: 32768,
		Depth:  1,
		Format: format.RGBA8Unorm,
		Levels: 1,
		Dim:    Tex2D,
	}

	// Exactly 4 GiB is allowed.
	layout, err := ComputeLayout(desc)
	if err != nil {
		t.Fatalf("ComputeLayout() at the cap: error = %v", err)
	}
	if layout.TotalSize != MaxSurfaceSize {
		t.Fatalf("TotalSize = %d, want %d", layout.TotalSize, uint64(MaxSurfaceSize))
	}

	// One more slice pushes past it.
	desc.Depth = 2
	desc.Dim = Tex2DArray
	if _, err := ComputeLayout(desc); !errors.Is(err, ErrSizeExceeded) {
		t.Errorf("ComputeLayout() past the cap: error = %v, want ErrSizeExceeded", err)
	}
}

func TestComputeLayout_Errors(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want error
	}{
		{"zero width", Descriptor{Height: 1, Depth: 1, Format: format.R8Unorm, Levels: 1}, ErrInvalidDescriptor},
		{"zero levels", Descriptor{Width: 1, Height: 1, Depth: 1, Format: format.R8Unorm}, ErrInvalidDescriptor},
		{"zero depth", Descriptor{Width: 1, Height: 1, Format: format.R8Unorm, Levels: 1}, ErrInvalidDescriptor},
		{"undefined format", Descriptor{Width: 1, Height: 1, Depth: 1, Levels: 1}, format.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeLayout(tt.desc); !errors.Is(err, tt.want) {
				t.Errorf("ComputeLayout() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestComputeLayout_OffsetsStrictlyIncrease(t *testing.T) {
	layout, err := ComputeLayout(Descriptor{
		Width:  256,
		Height: 256,
		Depth:  1,
		Format: format.RGBA8Unorm,
		Levels: 9,
		Dim:    Tex2D,
	})
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	for i := 1; i < len(layout.LevelOffsets); i++ {
		if layout.LevelOffsets[i] <= layout.LevelOffsets[i-1] {
			t.Errorf("LevelOffsets[%d] = %d, not greater than LevelOffsets[%d] = %d",
				i, layout.LevelOffsets[i], i-1, layout.LevelOffsets[i-1])
		}
		if layout.LevelOffsets[i] >= layout.TotalSize {
			t.Errorf("LevelOffsets[%d] = %d, beyond TotalSize %d",
				i, layout.LevelOffsets[i], layout.TotalSize)
		}
	}
}

func TestComputeLayout_Deterministic(t *testing.T) {
	desc := Descriptor{
		Width:  257,
		Height: 130,
		Depth:  4,
		Format: format.Z24S8Uint,
		Levels: 6,
		Dim:    Tex2DArray,
		HAlign: MacrotileWidth,
		VAlign: MacrotileHeight,
	}
	a, errA := ComputeLayout(desc)
	b, errB := ComputeLayout(desc)
	if errA != nil || errB != nil {
		t.Fatalf("ComputeLayout() errors = %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("layouts differ:\n%+v\n%+v", a, b)
	}
}
