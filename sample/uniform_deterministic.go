/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sample

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/salsa20"
)

// UniformDet deterministically samples a reproducible sequence of
// values in [lo, hi) from a 32-byte key, the way the reference
// library's NewRandomDetVector derives a client's correlated-randomness
// share from a Diffie-Hellman element: two parties computing the same
// key independently must draw the same sequence.
//
// Sampling is pure rejection sampling over a salsa20 keystream: draw a
// candidate in [0, hi) by masking a keystream block down to hi's bit
// length and rejecting overshoots, then redraw while the candidate is
// still below lo. No process-global state is consulted, so the same
// (key, lo, hi, n) always produces the same output.
type UniformDet struct {
	key      *[32]byte
	lo, hi   *big.Int
	maxBytes int
	shift    uint
}

// NewUniformDet returns a sampler for the interval [lo, hi) keyed by
// key.
func NewUniformDet(lo, hi *big.Int, key *[32]byte) *UniformDet {
	maxBits := new(big.Int).Sub(hi, big.NewInt(1)).BitLen()
	maxBytes := (maxBits + 7) / 8
	shift := uint(8*maxBytes - maxBits)

	return &UniformDet{
		key:      key,
		lo:       lo,
		hi:       hi,
		maxBytes: maxBytes,
		shift:    shift,
	}
}

// draw produces the block-th pseudorandom candidate in [0, 2^maxBits),
// masked down from a fresh salsa20 keystream block. block is encoded
// into the nonce so successive calls never reuse the same keystream
// bytes.
func (u *UniformDet) draw(block uint64) *big.Int {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, block)

	in := make([]byte, u.maxBytes)
	out := make([]byte, u.maxBytes)
	salsa20.XORKeyStream(out, in, nonce, u.key)

	if u.shift > 0 {
		out[0] >>= u.shift
	}

	return new(big.Int).SetBytes(out)
}

// SampleN returns the first n values of the deterministic [lo, hi)
// sequence.
func (u *UniformDet) SampleN(n int) []*big.Int {
	ret := make([]*big.Int, n)

	var block uint64
	for i := 0; i < n; i++ {
		v := u.draw(block)
		block++

		for v.Cmp(u.hi) >= 0 || v.Cmp(u.lo) < 0 {
			v = u.draw(block)
			block++
		}

		ret[i] = v
	}

	return ret
}
