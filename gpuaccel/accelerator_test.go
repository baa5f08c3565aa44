package gpuaccel

import (
	"testing"

	"github.com/gogpu/vecraster"
)

func TestAcceleratorName(t *testing.T) {
	a := New()
	if got := a.Name(); got != "wgpu" {
		t.Errorf("Name() = %q, want %q", got, "wgpu")
	}
}

func TestAcceleratorCanAccelerateNothing(t *testing.T) {
	a := New()
	ops := []vecraster.AcceleratedOp{
		vecraster.OpChannelDecompose,
		vecraster.OpPalettize,
		vecraster.OpThinning,
	}
	for _, op := range ops {
		if a.CanAccelerate(op) {
			t.Errorf("CanAccelerate(%v) = true, want false (dispatch not implemented)", op)
		}
	}
}

func TestAcceleratorPalettizeFallsBack(t *testing.T) {
	a := New()
	err := a.Palettize(nil, 0, 0, nil, nil)
	if err != vecraster.ErrFallbackToCPU {
		t.Errorf("Palettize() = %v, want ErrFallbackToCPU", err)
	}
}

func TestAcceleratorThinningStepFallsBack(t *testing.T) {
	a := New()
	changed, err := a.ThinningStep(nil, 0, 0, false)
	if changed {
		t.Error("ThinningStep() reported changed=true despite falling back")
	}
	if err != vecraster.ErrFallbackToCPU {
		t.Errorf("ThinningStep() err = %v, want ErrFallbackToCPU", err)
	}
}

func TestAcceleratorCloseBeforeInitIsNoop(t *testing.T) {
	a := New()
	a.Close() // must not panic on an uninitialized accelerator
}

func TestBytesToSPIRVWordsLittleEndian(t *testing.T) {
	// Two words: 0x04030201 and 0x08070605, little-endian encoded.
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	words := bytesToSPIRVWords(b)
	want := []uint32{0x04030201, 0x08070605}
	if len(words) != len(want) {
		t.Fatalf("bytesToSPIRVWords() len = %d, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %#x, want %#x", i, words[i], want[i])
		}
	}
}

func TestBytesToSPIRVWordsDropsTrailingPartialWord(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0xAA, 0xBB}
	words := bytesToSPIRVWords(b)
	if len(words) != 1 {
		t.Fatalf("bytesToSPIRVWords() len = %d, want 1", len(words))
	}
	if words[0] != 0x04030201 {
		t.Errorf("word 0 = %#x, want 0x04030201", words[0])
	}
}
