package tensor

import (
	"bytes"
	"reflect"
	"testing"
)

// TestDemoTensorShape tests that the demonstration payload declares the fixed demo shape and dtype
func TestDemoTensorShape(t *testing.T) {
	d, err := NewDemo(1)
	if err != nil {
		t.Fatalf("Failed to create demo tensor: %v", err)
	}

	wantShape := []int{25, 1, 512, 512, 1}
	if !reflect.DeepEqual(d.Shape(), wantShape) {
		t.Errorf("Demo shape = %v, want %v", d.Shape(), wantShape)
	}

	if d.DType() != Uint16 {
		t.Errorf("Demo dtype = %s, want uint16", d.DType())
	}

	wantBytes := 25 * 1 * 512 * 512 * 1 * 2
	if d.ByteLen() != wantBytes {
		t.Errorf("Demo byte length = %d, want %d", d.ByteLen(), wantBytes)
	}
}

// TestDemoTensorRange tests that every generated element lies in [0, 2048)
func TestDemoTensorRange(t *testing.T) {
	d, err := NewDemo(42)
	if err != nil {
		t.Fatalf("Failed to create demo tensor: %v", err)
	}

	for i := 0; i < d.NumElements(); i++ {
		v, err := d.Uint16At(i)
		if err != nil {
			t.Fatalf("Failed to read element %d: %v", i, err)
		}
		if v >= 2048 {
			t.Fatalf("Element %d is %d, must be in [0, 2048)", i, v)
		}
	}
}

// TestRandomDeterminism tests that the same seed reproduces the same buffer
func TestRandomDeterminism(t *testing.T) {
	shape := []int{4, 8}

	a, err := NewRandom(shape, Uint16, 2048, 7)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	b, err := NewRandom(shape, Uint16, 2048, 7)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	c, err := NewRandom(shape, Uint16, 2048, 8)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}

	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("Same seed produced different buffers")
	}
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Errorf("Different seeds produced identical buffers")
	}
}

// TestRandomDTypes tests random fills across all supported element types
func TestRandomDTypes(t *testing.T) {
	shape := []int{3, 5}

	for _, dtype := range []DType{Uint8, Uint16, Uint32, Float32, Float64} {
		t.Run(string(dtype), func(t *testing.T) {
			tn, err := NewRandom(shape, dtype, 100, 1)
			if err != nil {
				t.Fatalf("Failed to create %s tensor: %v", dtype, err)
			}

			want := NumElements(shape) * dtype.Size()
			if tn.ByteLen() != want {
				t.Errorf("Byte length = %d, want %d", tn.ByteLen(), want)
			}
		})
	}
}

// TestNewValidation tests that construction rejects inconsistent declarations
func TestNewValidation(t *testing.T) {
	tests := map[string]struct {
		shape []int
		dtype DType
		data  []byte
	}{
		"empty shape":        {shape: nil, dtype: Uint16, data: []byte{}},
		"zero dimension":     {shape: []int{4, 0}, dtype: Uint16, data: []byte{}},
		"negative dimension": {shape: []int{-1}, dtype: Uint16, data: []byte{}},
		"unknown dtype":      {shape: []int{2}, dtype: DType("int7"), data: make([]byte, 4)},
		"short buffer":       {shape: []int{2, 2}, dtype: Uint16, data: make([]byte, 7)},
		"long buffer":        {shape: []int{2, 2}, dtype: Uint16, data: make([]byte, 9)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := New(tc.shape, tc.dtype, tc.data); err == nil {
				t.Errorf("New(%v, %s, %d bytes) succeeded, want error", tc.shape, tc.dtype, len(tc.data))
			}
		})
	}
}

// TestRandomRangeValidation tests that out-of-range max values are rejected
func TestRandomRangeValidation(t *testing.T) {
	if _, err := NewRandom([]int{2}, Uint8, 300, 1); err == nil {
		t.Errorf("NewRandom with max 300 for uint8 succeeded, want error")
	}
	if _, err := NewRandom([]int{2}, Uint16, 0, 1); err == nil {
		t.Errorf("NewRandom with max 0 succeeded, want error")
	}
}

// TestUint16At tests element access including bounds and dtype checks
func TestUint16At(t *testing.T) {
	tn, err := New([]int{2}, Uint16, []byte{0x01, 0x00, 0xff, 0x07})
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}

	if v, err := tn.Uint16At(0); err != nil || v != 1 {
		t.Errorf("Uint16At(0) = %d, %v, want 1, nil", v, err)
	}
	if v, err := tn.Uint16At(1); err != nil || v != 2047 {
		t.Errorf("Uint16At(1) = %d, %v, want 2047, nil", v, err)
	}
	if _, err := tn.Uint16At(2); err == nil {
		t.Errorf("Uint16At(2) succeeded, want out of range error")
	}

	f, err := New([]int{1}, Float32, make([]byte, 4))
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	if _, err := f.Uint16At(0); err == nil {
		t.Errorf("Uint16At on float32 tensor succeeded, want error")
	}
}
