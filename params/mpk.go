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

// Package params holds the public parameters (MPK) shared by every
// client and the aggregator in a DMCFE instance, and the loader that
// turns an opaque configuration record into a validated MPK.
package params

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/privacylayer/dmcfe/internal"
)

// MPK is the immutable tuple of public parameters for one protocol
// instance: a safe-prime modulus P = 2Q+1, the two generators G, H of
// the order-Q subgroup of Z*_P, the party count N, and the per-client
// vector length L.
type MPK struct {
	P *big.Int
	Q *big.Int
	G *big.Int
	H *big.Int
	N int
	L int
}

// New validates the subgroup invariants of a candidate (p, q, g, h) and
// binds them together with the caller-supplied party count n and
// per-client vector length l into an MPK.
//
// It returns a ProtocolError if p or q is not prime, if g or h fails to
// generate the order-q subgroup (g^q != 1 or h^q != 1 mod p), or if g
// or h is the trivial element 1. n must be >= 2 and l >= 1.
func New(p, q, g, h *big.Int, n, l int) (*MPK, error) {
	if n < 2 {
		return nil, errors.Wrap(internal.ProtocolError, "party count N must be at least 2")
	}
	if l < 1 {
		return nil, errors.Wrap(internal.ProtocolError, "vector length L must be at least 1")
	}
	if p == nil || q == nil || g == nil || h == nil {
		return nil, errors.Wrap(internal.ProtocolError, "p, q, g, h must all be set")
	}
	if !q.ProbablyPrime(20) {
		return nil, errors.Wrap(internal.ProtocolError, "q is not prime")
	}
	if !p.ProbablyPrime(20) {
		return nil, errors.Wrap(internal.ProtocolError, "p is not prime")
	}

	wantP := new(big.Int).Lsh(q, 1)
	wantP.Add(wantP, big.NewInt(1))
	if p.Cmp(wantP) != 0 {
		return nil, errors.Wrap(internal.ProtocolError, "p must equal 2q+1")
	}

	one := big.NewInt(1)
	if g.Cmp(one) == 0 {
		return nil, errors.Wrap(internal.ProtocolError, "g must not be the trivial element")
	}
	if h.Cmp(one) == 0 {
		return nil, errors.Wrap(internal.ProtocolError, "h must not be the trivial element")
	}
	if new(big.Int).Exp(g, q, p).Cmp(one) != 0 {
		return nil, errors.Wrap(internal.ProtocolError, "g does not generate the order-q subgroup")
	}
	if new(big.Int).Exp(h, q, p).Cmp(one) != 0 {
		return nil, errors.Wrap(internal.ProtocolError, "h does not generate the order-q subgroup")
	}

	return &MPK{
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
		G: new(big.Int).Set(g),
		H: new(big.Int).Set(h),
		N: n,
		L: l,
	}, nil
}

// Bound returns the largest per-entry bound B (on the absolute values
// of x and y) this MPK's (N, L) pair admits before N*L*B^2 would exceed
// Q, i.e. the largest B for
// which the wraparound-freedom condition of the scheme still holds.
func (mpk *MPK) Bound() *big.Int {
	nl := big.NewInt(int64(mpk.N * mpk.L))
	b := new(big.Int).Div(mpk.Q, nl)

	return b.Sqrt(b)
}
