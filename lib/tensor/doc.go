// Package tensor implements the numeric array payload transmitted through
// the relay. A tensor couples a multi-dimensional shape and a numpy
// compatible element type with a little-endian byte buffer, and the
// package guarantees that the declaration and the buffer always agree.
//
// The package focuses on:
//   - Shape and dtype validation at construction time
//   - Reproducible uniform random fills for demonstration payloads
//   - Raw byte access for zero-copy transmission
//
// Key Components:
//
//   - DType: Element type descriptor with numpy-compatible names (uint8,
//     uint16, uint32, float32, float64) and per-element byte widths.
//
//   - Tensor: Immutable shape and dtype with a backing byte buffer. The
//     buffer length is validated against the declaration on every
//     construction path.
//
//   - NewRandom/NewDemo: Seeded uniform fills. NewDemo produces the fixed
//     demonstration payload: shape (25,1,512,512,1), dtype uint16, values
//     in [0, 2048).
//
// Thread Safety:
//
//	Tensors are immutable after construction and safe for concurrent
//	reads. Callers must not modify the slice returned by Bytes().
package tensor
