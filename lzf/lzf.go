// Package lzf implements the LZF block compression format used by the
// binary_compressed body of PCD files.
//
// A compressed stream is a sequence of tokens. A control byte below 32
// introduces a literal run of up to 32 bytes. Any other control byte is a
// back-reference into the bytes already produced, carrying a 3-bit length
// (extended by one byte when saturated) and a 13-bit distance, copying
// between 3 and 264 bytes from at most 8192 bytes back.
package lzf

import "github.com/pkg/errors"

const (
	hashLog  = 16
	hashSize = 1 << hashLog

	// maxOff is the back-reference window.
	maxOff = 1 << 13
	// maxRun is the longest literal run a single control byte can carry.
	maxRun = 1 << 5
	// maxMatch is the longest copy a single back-reference can carry.
	maxMatch = (1 << 8) + (1 << 3)
	// minMatch is the shortest copy worth a back-reference token.
	minMatch = 3
)

var (
	// ErrCorrupt indicates input that is not a well-formed LZF stream: a
	// token truncated mid-sequence, a back-reference pointing before the
	// start of the output, or a token that would overrun the declared
	// output size.
	ErrCorrupt = errors.New("lzf: corrupt compressed data")

	// ErrShortBuffer indicates the destination buffer is too small for the
	// compressed output. Size destinations with CompressBound.
	ErrShortBuffer = errors.New("lzf: output buffer too small")
)

// CompressBound returns the destination size that guarantees Compress can
// encode n input bytes, covering the all-literals worst case.
func CompressBound(n int) int {
	if n <= 0 {
		return 0
	}
	return n + (n+maxRun-1)/maxRun
}

// hash3 maps a 3-byte sequence to a table slot.
func hash3(a, b, c byte) uint32 {
	h := uint32(a)<<16 | uint32(b)<<8 | uint32(c)
	return (h * 2654435761) >> (32 - hashLog)
}

// Compress encodes src into dst and returns the number of bytes written.
// The parse is greedy left to right: at each position the most recent prior
// occurrence of the next 3 bytes within the window is extended as far as it
// matches, so equal-length candidates always resolve to the smallest
// distance. Empty input encodes to zero bytes.
func Compress(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	// Slot values are position+1 so the zero value means empty.
	htab := make([]int32, hashSize)

	out := 0
	lit := 0 // start of the pending literal run
	i := 0
	for i+minMatch <= len(src) {
		h := hash3(src[i], src[i+1], src[i+2])
		cand := int(htab[h]) - 1
		htab[h] = int32(i + 1)

		if cand >= 0 && i-cand <= maxOff &&
			src[cand] == src[i] && src[cand+1] == src[i+1] && src[cand+2] == src[i+2] {
			length := minMatch
			limit := len(src) - i
			if limit > maxMatch {
				limit = maxMatch
			}
			for length < limit && src[cand+length] == src[i+length] {
				length++
			}

			var err error
			if out, err = emitLiterals(dst, out, src[lit:i]); err != nil {
				return 0, err
			}
			if out, err = emitMatch(dst, out, i-cand-1, length); err != nil {
				return 0, err
			}

			// Keep the table current across the matched region so the
			// most-recent preference holds at the next position.
			for j := i + 1; j < i+length && j+minMatch <= len(src); j++ {
				htab[hash3(src[j], src[j+1], src[j+2])] = int32(j + 1)
			}
			i += length
			lit = i
		} else {
			i++
		}
	}

	return emitLiterals(dst, out, src[lit:])
}

func emitLiterals(dst []byte, out int, lit []byte) (int, error) {
	for len(lit) > 0 {
		run := len(lit)
		if run > maxRun {
			run = maxRun
		}
		if out+1+run > len(dst) {
			return 0, ErrShortBuffer
		}
		dst[out] = byte(run - 1)
		out++
		copy(dst[out:], lit[:run])
		out += run
		lit = lit[run:]
	}
	return out, nil
}

// emitMatch encodes a copy of length bytes from off+1 positions back.
func emitMatch(dst []byte, out, off, length int) (int, error) {
	l := length - 2
	if l < 7 {
		if out+2 > len(dst) {
			return 0, ErrShortBuffer
		}
		dst[out] = byte(l<<5) | byte(off>>8)
		dst[out+1] = byte(off)
		return out + 2, nil
	}
	if out+3 > len(dst) {
		return 0, ErrShortBuffer
	}
	dst[out] = byte(7<<5) | byte(off>>8)
	dst[out+1] = byte(l - 7)
	dst[out+2] = byte(off)
	return out + 3, nil
}

// Decompress decodes src into dst, whose length is the expected output
// size, and returns the number of bytes produced. Tokens that would read
// before the start of the output or write past the end of dst fail with
// ErrCorrupt, as does input that ends in the middle of a token.
func Decompress(src, dst []byte) (int, error) {
	var ip, op int
	for ip < len(src) {
		ctrl := int(src[ip])
		ip++

		if ctrl < maxRun {
			run := ctrl + 1
			if ip+run > len(src) {
				return 0, errors.Wrapf(ErrCorrupt, "literal run of %d bytes at offset %d overruns input", run, ip-1)
			}
			if op+run > len(dst) {
				return 0, errors.Wrapf(ErrCorrupt, "literal run of %d bytes at offset %d overruns output", run, ip-1)
			}
			copy(dst[op:], src[ip:ip+run])
			ip += run
			op += run
			continue
		}

		length := ctrl >> 5
		if length == 7 {
			if ip >= len(src) {
				return 0, errors.Wrapf(ErrCorrupt, "truncated back-reference at offset %d", ip-1)
			}
			length += int(src[ip])
			ip++
		}
		length += 2
		if ip >= len(src) {
			return 0, errors.Wrapf(ErrCorrupt, "truncated back-reference at offset %d", ip-1)
		}
		ref := op - (ctrl&0x1f)<<8 - int(src[ip]) - 1
		ip++
		if ref < 0 {
			return 0, errors.Wrapf(ErrCorrupt, "back-reference to %d bytes before output start", -ref)
		}
		if op+length > len(dst) {
			return 0, errors.Wrapf(ErrCorrupt, "back-reference of %d bytes overruns output size %d", length, len(dst))
		}
		// Byte-at-a-time so overlapping copies repeat the produced bytes.
		for n := 0; n < length; n++ {
			dst[op] = dst[ref]
			op++
			ref++
		}
	}
	return op, nil
}
