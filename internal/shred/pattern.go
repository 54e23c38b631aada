package shred

import "io"

// motifs is the fixed overwrite schedule. The first seven passes cycle these
// 4-byte motifs across the whole file; any pass beyond the schedule writes
// freshly generated random bytes instead.
var motifs = [][]byte{
	{0x55, 0x55, 0x55, 0x55}, // 0101...
	{0xAA, 0xAA, 0xAA, 0xAA}, // 1010...
	{0xFF, 0xFF, 0xFF, 0xFF}, // all ones
	{0x00, 0x00, 0x00, 0x00}, // all zeros
	{0x92, 0x49, 0x24, 0x92},
	{0x49, 0x24, 0x92, 0x49},
	{0x24, 0x92, 0x49, 0x24},
}

// payload builds the full-file buffer for a 1-based pass number. Deterministic
// passes repeat the motif cyclically and truncate to the exact file size,
// never padding beyond it.
func (s *Shredder) payload(pass int, size int64) ([]byte, error) {
	if pass <= len(motifs) {
		return repeatMotif(motifs[pass-1], size), nil
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(s.random, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func repeatMotif(motif []byte, size int64) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = motif[i%len(motif)]
	}
	return buf
}
