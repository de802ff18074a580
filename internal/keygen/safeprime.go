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

// Package keygen is the offline parameter-generation tool: it produces
// the safe prime p = 2q+1 and the two generators g, h that seed a
// protocol instance's public parameters.
// Nothing in the client/aggregator runtime imports it; within this
// module only cmd/dmcfe-demo calls it, to stand up a fresh group whose
// output it passes to params.New.
package keygen

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
	"github.com/xlab-si/emmy/crypto/common"
)

// GetSafePrime searches for a safe prime p = 2q+1 of the given bit
// length, where both p and q are prime. The search strategy follows
// the standard construction used by _param_generator: draw a
// candidate prime q, form p = 2q+1, and retry
// until p is also prime and has the requested bit length.
func GetSafePrime(bits int) (p, q *big.Int, err error) {
	if bits < 3 {
		return nil, nil, errors.New("safe prime bit length must be at least 3")
	}

	for {
		q, err = rand.Prime(rand.Reader, bits-1)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not generate candidate prime q")
		}

		p = new(big.Int).Lsh(q, 1)
		p.Add(p, big.NewInt(1))

		if p.BitLen() != bits {
			continue
		}
		if p.ProbablyPrime(20) {
			return p, q, nil
		}
	}
}

// GroupParams holds a freshly generated DDH group: a safe prime modulus
// p = 2q+1 and two independent generators g, h of the order-q subgroup
// of Z*_p.
type GroupParams struct {
	P *big.Int
	Q *big.Int
	G *big.Int
	H *big.Int
}

// NewGroupParams generates a new safe-prime group of the requested bit
// length and samples two independent generators g, h of its order-q
// subgroup, following fullysec.NewDamgard's rejection-sampling loop for
// h: reject candidates that collapse to the identity or trivial orders,
// which rules out a handful of known small-subgroup attacks.
func NewGroupParams(bits int) (*GroupParams, error) {
	p, q, err := GetSafePrime(bits)
	if err != nil {
		return nil, err
	}

	g, err := generateGenerator(p, q)
	if err != nil {
		return nil, err
	}

	h, err := generateGenerator(p, q)
	if err != nil {
		return nil, err
	}
	for h.Cmp(g) == 0 {
		h, err = generateGenerator(p, q)
		if err != nil {
			return nil, err
		}
	}

	return &GroupParams{P: p, Q: q, G: g, H: h}, nil
}

// generateGenerator samples a generator of the order-q subgroup of Z*_p
// by squaring a random residue to land in the quadratic-residue
// subgroup.
func generateGenerator(p, q *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	three := big.NewInt(3)

	for {
		r, err := common.GetRandomIntFromRange(three, p)
		if err != nil {
			return nil, errors.Wrap(err, "could not sample generator candidate")
		}

		g := new(big.Int).Exp(r, big.NewInt(2), p)
		if g.Cmp(one) == 0 {
			continue
		}
		if new(big.Int).Exp(g, q, p).Cmp(one) != 0 {
			continue
		}

		return g, nil
	}
}
