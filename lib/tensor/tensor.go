package tensor

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
)

// --------------------------------------------------------------------------
// Element Types
// --------------------------------------------------------------------------

// DType identifies the element type of a tensor. The string values match
// the numpy dtype names so headers are interoperable with numpy senders.
type DType string

const (
	Uint8   DType = "uint8"
	Uint16  DType = "uint16"
	Uint32  DType = "uint32"
	Float32 DType = "float32"
	Float64 DType = "float64"
)

// Size returns the width of one element in bytes, or 0 for unknown types
func (d DType) Size() int {
	switch d {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Uint32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// Validate checks that the dtype is one of the supported element types
func (d DType) Validate() error {
	if d.Size() == 0 {
		return fmt.Errorf("unsupported dtype %q", string(d))
	}
	return nil
}

// ParseDType converts a dtype name into a DType
func ParseDType(name string) (DType, error) {
	d := DType(name)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// --------------------------------------------------------------------------
// Demo Constants
// --------------------------------------------------------------------------

// The demo transmitter always sends the same payload: a five-dimensional
// uint16 tensor with values drawn uniformly from [0, 2048).
var DemoShape = []int{25, 1, 512, 512, 1}

const (
	DemoDType DType = Uint16
	DemoMax   int64 = 2048
)

// --------------------------------------------------------------------------
// Tensor
// --------------------------------------------------------------------------

// Tensor is a fixed-shape numeric array backed by a little-endian byte
// buffer. The shape and dtype always describe the backing buffer; this
// invariant is established at construction and never changes.
type Tensor struct {
	shape []int
	dtype DType
	data  []byte
}

// NumElements returns the number of elements a shape holds
func NumElements(shape []int) int {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	return n
}

// New creates a tensor from an existing byte buffer. The buffer length
// must match the declared shape and dtype exactly.
func New(shape []int, dtype DType, data []byte) (*Tensor, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if err := dtype.Validate(); err != nil {
		return nil, err
	}

	want := NumElements(shape) * dtype.Size()
	if len(data) != want {
		return nil, fmt.Errorf("buffer length %d does not match shape %v of dtype %s (want %d bytes)",
			len(data), shape, dtype, want)
	}

	return &Tensor{
		shape: append([]int(nil), shape...),
		dtype: dtype,
		data:  data,
	}, nil
}

// NewRandom creates a tensor filled with values drawn uniformly from
// [0, max). The seed makes the fill reproducible; pass a different seed
// per run for fresh data.
func NewRandom(shape []int, dtype DType, max int64, seed int64) (*Tensor, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if err := dtype.Validate(); err != nil {
		return nil, err
	}
	if max <= 0 {
		return nil, fmt.Errorf("max must be positive, got %d", max)
	}
	if limit := uintLimit(dtype); limit > 0 && max > limit {
		return nil, fmt.Errorf("max %d exceeds range of dtype %s", max, dtype)
	}

	rng := rand.New(rand.NewSource(seed))
	n := NumElements(shape)
	size := dtype.Size()
	data := make([]byte, n*size)

	for i := 0; i < n; i++ {
		off := i * size
		switch dtype {
		case Uint8:
			data[off] = byte(rng.Int63n(max))
		case Uint16:
			binary.LittleEndian.PutUint16(data[off:], uint16(rng.Int63n(max)))
		case Uint32:
			binary.LittleEndian.PutUint32(data[off:], uint32(rng.Int63n(max)))
		case Float32:
			binary.LittleEndian.PutUint32(data[off:], math.Float32bits(float32(rng.Float64()*float64(max))))
		case Float64:
			binary.LittleEndian.PutUint64(data[off:], math.Float64bits(rng.Float64()*float64(max)))
		}
	}

	return &Tensor{
		shape: append([]int(nil), shape...),
		dtype: dtype,
		data:  data,
	}, nil
}

// NewDemo creates the demonstration payload with the fixed demo shape,
// dtype and value range
func NewDemo(seed int64) (*Tensor, error) {
	return NewRandom(DemoShape, DemoDType, DemoMax, seed)
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// Shape returns a copy of the tensor's dimensions
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// DType returns the element type of the tensor
func (t *Tensor) DType() DType {
	return t.dtype
}

// Bytes returns the raw little-endian backing buffer. The caller must not
// modify the returned slice.
func (t *Tensor) Bytes() []byte {
	return t.data
}

// NumElements returns the number of elements in the tensor
func (t *Tensor) NumElements() int {
	return NumElements(t.shape)
}

// ByteLen returns the length of the backing buffer in bytes
func (t *Tensor) ByteLen() int {
	return len(t.data)
}

// Uint16At returns the i-th element of a uint16 tensor
func (t *Tensor) Uint16At(i int) (uint16, error) {
	if t.dtype != Uint16 {
		return 0, fmt.Errorf("tensor has dtype %s, not uint16", t.dtype)
	}
	if i < 0 || i >= t.NumElements() {
		return 0, fmt.Errorf("index %d out of range [0, %d)", i, t.NumElements())
	}
	return binary.LittleEndian.Uint16(t.data[i*2:]), nil
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// validateShape checks that all dimensions are positive
func validateShape(shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("empty shape")
	}
	for i, dim := range shape {
		if dim <= 0 {
			return fmt.Errorf("shape dimension %d is %d, must be positive", i, dim)
		}
	}
	return nil
}

// uintLimit returns the exclusive upper bound of an unsigned integer
// dtype, or 0 if the dtype has no such bound relevant here
func uintLimit(d DType) int64 {
	switch d {
	case Uint8:
		return 1 << 8
	case Uint16:
		return 1 << 16
	default:
		return 0
	}
}
