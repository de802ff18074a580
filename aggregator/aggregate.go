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

// Package aggregator combines per-client ciphertexts and functional
// key shares into the group element g^<x,y> mod p, then recovers the
// integer inner product via discrete-log search.
package aggregator

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/privacylayer/dmcfe/client"
	"github.com/privacylayer/dmcfe/data"
	"github.com/privacylayer/dmcfe/internal"
	"github.com/privacylayer/dmcfe/internal/dlog"
	"github.com/privacylayer/dmcfe/params"
)

// Aggregator decrypts an aggregated inner product given a set of
// per-client ciphertexts and key shares produced under the same MPK.
type Aggregator struct {
	MPK *params.MPK

	// StrictSubgroupCheck, when true, rejects any ciphertext element
	// that is not in the order-q subgroup of Z*_p before aggregating,
	// surfacing a ProtocolError instead of silently computing a
	// meaningless result. Off by default, to keep the unchecked fast
	// path as the default.
	StrictSubgroupCheck bool

	// Table, if set, is tried before baby-step giant-step when
	// recovering the final discrete logarithm.
	Table *dlog.Table

	// Bound, if set, narrows the discrete-log search to [-Bound,
	// Bound] instead of the full order-q range. Callers that know the
	// scheme's configured entry bound B should set this to N*L*B^2,
	// the tightest range a per-entry bound of B guarantees the true
	// inner product fits in.
	Bound *big.Int
}

// New returns an Aggregator bound to mpk.
func New(mpk *params.MPK) *Aggregator {
	return &Aggregator{MPK: mpk}
}

// Decrypt combines N ciphertexts and N key shares under weight matrix
// y into alpha = g^<x,y> mod p, then recovers the integer inner
// product <x,y> via discrete-log search.
//
// Per-client num_i/den_i are computed concurrently across an
// errgroup.Group, one goroutine per client, since multiplication in
// Z*_p is abelian and the partial products may be folded in any order;
// the final reduction is synchronized by a mutex-held running product.
func (agg *Aggregator) Decrypt(ciphertexts []client.Ciphertext, shares []client.KeyShare, y data.Matrix) (*big.Int, error) {
	n, l := agg.MPK.N, agg.MPK.L

	if len(ciphertexts) != n || len(shares) != n {
		return nil, errors.Wrapf(internal.ShapeMismatch, "expected %d ciphertexts and key shares, got %d and %d", n, len(ciphertexts), len(shares))
	}
	if !y.CheckDims(n, l) {
		return nil, errors.Wrapf(internal.ShapeMismatch, "weight matrix is %dx%d, want %dx%d", y.Rows(), y.Cols(), n, l)
	}

	byIndex := make(map[int]client.Ciphertext, n)
	for _, ct := range ciphertexts {
		if len(ct.C) != l+2 {
			return nil, errors.Wrapf(internal.ShapeMismatch, "ciphertext %d has %d elements, want %d", ct.Index, len(ct.C), l+2)
		}
		byIndex[ct.Index] = ct
	}

	sharesByIndex := make(map[int]client.KeyShare, n)
	for _, ks := range shares {
		sharesByIndex[ks.Index] = ks
	}

	// Step 1: M <- sum_i mu_i (mod q).
	M := big.NewInt(0)
	for i := 0; i < n; i++ {
		ks, ok := sharesByIndex[i]
		if !ok {
			return nil, errors.Wrapf(internal.ShapeMismatch, "missing key share for client %d", i)
		}
		M.Add(M, ks.Mu)
	}
	M.Mod(M, agg.MPK.Q)

	// Steps 2-3: alpha <- product_i num_i * den_i^-1, parallelized
	// across clients.
	alpha := big.NewInt(1)
	var mu sync.Mutex

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			ct, ok := byIndex[i]
			if !ok {
				return errors.Wrapf(internal.ShapeMismatch, "missing ciphertext for client %d", i)
			}
			ks := sharesByIndex[i]

			if agg.StrictSubgroupCheck {
				if err := agg.checkSubgroup(ct); err != nil {
					return err
				}
			}

			num := big.NewInt(1)
			for k := 0; k < l; k++ {
				t1 := internal.ModExp(ct.C[k+2], y[i][k], agg.MPK.P)
				num.Mod(new(big.Int).Mul(num, t1), agg.MPK.P)
			}

			t1 := new(big.Int).Exp(ct.C[0], ks.K1, agg.MPK.P)
			t2 := new(big.Int).Exp(ct.C[1], ks.K2, agg.MPK.P)
			denom := new(big.Int).Mod(new(big.Int).Mul(t1, t2), agg.MPK.P)
			denomInv, err := internal.Inverse(denom, agg.MPK.P)
			if err != nil {
				return err
			}

			contribution := new(big.Int).Mod(new(big.Int).Mul(num, denomInv), agg.MPK.P)

			mu.Lock()
			alpha.Mod(alpha.Mul(alpha, contribution), agg.MPK.P)
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 4: beta <- g^M; alpha <- alpha * beta^-1.
	beta := new(big.Int).Exp(agg.MPK.G, M, agg.MPK.P)
	betaInv, err := internal.Inverse(beta, agg.MPK.P)
	if err != nil {
		return nil, err
	}
	alpha.Mod(alpha.Mul(alpha, betaInv), agg.MPK.P)

	// Step 5: recover the integer inner product from alpha = g^<x,y>.
	calc, err := dlog.NewCalc().InZp(agg.MPK.P, agg.MPK.Q)
	if err != nil {
		return nil, err
	}
	calc = calc.WithNeg()
	if agg.Table != nil {
		calc = calc.WithTable(agg.Table)
	}
	if agg.Bound != nil {
		calc = calc.WithBound(agg.Bound)
	}

	res, err := calc.Solve(alpha, agg.MPK.G)
	if err != nil && agg.Bound != nil && errors.Is(err, dlog.NotFound) {
		// A caller-supplied Bound means the search already covered
		// [-Bound, Bound]; exhausting it means the true value lies
		// outside the bound the caller believed the scheme was
		// configured for, not a generic solver failure.
		return nil, dlog.BoundExceeded
	}
	return res, err
}

// checkSubgroup verifies every ciphertext element lies in the order-q
// subgroup of Z*_p, i.e. c^q == 1 (mod p).
func (agg *Aggregator) checkSubgroup(ct client.Ciphertext) error {
	for _, c := range ct.C {
		if new(big.Int).Exp(c, agg.MPK.Q, agg.MPK.P).Cmp(big.NewInt(1)) != 0 {
			return errors.Wrapf(internal.ProtocolError, "ciphertext element from client %d is not in the order-q subgroup", ct.Index)
		}
	}
	return nil
}
