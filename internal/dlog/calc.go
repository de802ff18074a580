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

// Package dlog recovers x from g^x mod p, where x is a bounded signed
// integer: a precomputed table lookup when available, falling back to
// baby-step giant-step.
package dlog

import (
	"math/big"

	"github.com/pkg/errors"
)

// MaxBound limits the interval of values that are checked when
// computing discrete logarithms via baby-step giant-step. It prevents
// time and memory exhaustive computation for practical purposes.
var MaxBound = big.NewInt(15000000000)

// NotFound is returned when the solver exhausts both the table and the
// baby-step giant-step fallback without locating x.
var NotFound = errors.New("discrete logarithm not found within bound")

// BoundExceeded is returned when a search restricted to a caller-supplied
// bound B ends without a result, i.e. the target inner product lies
// outside [-B, B]. No check is made before the search runs.
var BoundExceeded = errors.New("inner product exceeds the configured bound")

// Calc is the entry point for configuring a discrete-log calculator.
type Calc struct{}

// NewCalc returns a new Calc.
func NewCalc() *Calc {
	return &Calc{}
}

// CalcZp represents a calculator for discrete logarithms that operates
// in the Zp group of integers modulo prime p.
type CalcZp struct {
	p     *big.Int
	bound *big.Int
	m     *big.Int
	neg   bool
	table *Table
}

// InZp configures the calculator for the Zp group modulo p, searching
// the interval [0, order) (or [0, p-1) if order is nil).
func (*Calc) InZp(p, order *big.Int) (*CalcZp, error) {
	one := big.NewInt(1)
	var bound *big.Int
	if p == nil {
		return nil, errors.New("group modulus p cannot be nil")
	}

	if order == nil {
		if !p.ProbablyPrime(20) {
			return nil, errors.New("group modulus p must be prime")
		}
		bound = new(big.Int).Sub(p, one)
	} else {
		bound = order
	}

	m := new(big.Int).Sqrt(bound)
	m.Add(m, one)

	return &CalcZp{
		p:     p,
		bound: bound,
		m:     m,
		neg:   false,
	}, nil
}

// WithBound narrows the search interval to [0, bound] (or [-bound,
// bound] when combined with WithNeg). bound is clamped to MaxBound to
// keep the search space practical. The ceiling is enforced exactly:
// BabyStepGiantStep rejects any candidate outside [-bound, bound] as
// NotFound rather than returning it.
func (c *CalcZp) WithBound(bound *big.Int) *CalcZp {
	if bound != nil {
		if bound.Cmp(MaxBound) > 0 {
			bound = MaxBound
		}

		m := new(big.Int).Sqrt(bound)
		m.Add(m, big.NewInt(1))

		return &CalcZp{
			bound: bound,
			m:     m,
			p:     c.p,
			neg:   c.neg,
			table: c.table,
		}
	}
	return c
}

// WithNeg enables searching both the positive and negative half of the
// interval, for recovering signed inner products.
func (c *CalcZp) WithNeg() *CalcZp {
	return &CalcZp{
		bound: c.bound,
		m:     c.m,
		p:     c.p,
		neg:   true,
		table: c.table,
	}
}

// WithTable attaches a precomputed lookup table. Solve tries it before
// falling back to baby-step giant-step.
func (c *CalcZp) WithTable(t *Table) *CalcZp {
	return &CalcZp{
		bound: c.bound,
		m:     c.m,
		p:     c.p,
		neg:   c.neg,
		table: t,
	}
}

// Solve recovers x from h = g^x mod p, trying the attached table first
// (O(1)) and falling back to BabyStepGiantStep. It returns NotFound if
// neither strategy succeeds.
func (c *CalcZp) Solve(h, g *big.Int) (*big.Int, error) {
	if c.table != nil {
		if x, ok := c.table.Lookup(h); ok {
			return x, nil
		}
	}

	return c.BabyStepGiantStep(h, g)
}

// BabyStepGiantStep uses the baby-step giant-step method to compute the
// discrete logarithm in the Zp group. If c.neg is set to true it
// searches for the answer within [-bound, bound]. It does so by running
// two goroutines, one for negative answers and one for positive. If
// c.neg is set to false only one goroutine is started, searching for
// the answer within [0, bound].
func (c *CalcZp) BabyStepGiantStep(h, g *big.Int) (*big.Int, error) {
	// create goroutines calculating positive and possibly negative
	// result if c.neg is set to true
	retChan := make(chan *big.Int)
	errChan := make(chan error)
	go c.runBabyStepGiantStepIterative(h, g, retChan, errChan)
	if c.neg {
		gInv := new(big.Int).ModInverse(g, c.p)
		go c.runBabyStepGiantStepIterative(h, gInv, retChan, errChan)
	}

	// catch a value when the first routine finishes
	ret := <-retChan
	err := <-errChan
	// prevent the situation when one routine exhausted all possibilities
	// before the second found the solution
	if c.neg && err != nil {
		ret = <-retChan
		err = <-errChan
	}
	// if both routines give an error, return an error
	if err != nil {
		return nil, NotFound
	}
	// based on ret decide which routine gave the answer, thus if
	// answer is negative
	if c.neg && h.Cmp(new(big.Int).Exp(g, ret, c.p)) != 0 {
		ret.Neg(ret)
	}

	// the iterative search below explores giant steps in powers of two
	// and can overshoot c.bound before it notices; reject anything
	// outside [-bound, bound] instead of silently returning it.
	if c.bound != nil && new(big.Int).Abs(ret).Cmp(c.bound) > 0 {
		return nil, NotFound
	}

	return ret, nil
}

// runBabyStepGiantStepIterative implements the baby-step giant-step
// method to compute the discrete logarithm in the Zp group. It is meant
// to be run as a goroutine.
//
// The function searches for x, where h = g^x mod p. If the solution was
// not found within the provided bound, it returns an error. In contrast
// to the usual implementation of the method, this one proceeds
// iteratively, meaning that the smaller the solution is, the faster the
// algorithm finishes.
func (c *CalcZp) runBabyStepGiantStepIterative(h, g *big.Int, retChan chan *big.Int, errChan chan error) {
	one := big.NewInt(1)
	two := big.NewInt(2)

	// big.Int cannot be a key, thus we use a stringified bytes representation of the integer
	T := make(map[string]*big.Int)
	// prepare values for the loop
	x := big.NewInt(1)
	y := new(big.Int).Set(h)
	z := new(big.Int).ModInverse(g, c.p)
	z.Exp(z, two, c.p)

	bits := int64(c.m.BitLen())

	T[string(x.Bytes())] = big.NewInt(0)
	x.Mod(x.Mul(x, g), c.p)
	j := big.NewInt(0)
	giantStep := new(big.Int)
	bound := new(big.Int)
	for i := int64(0); i < bits; i++ {
		// iteratively increasing giant step up to maximal value c.m
		giantStep.Exp(two, big.NewInt(i+1), nil)
		if giantStep.Cmp(c.m) > 0 {
			giantStep.Set(c.m)
			z.ModInverse(g, c.p)
			z.Exp(z, c.m, c.p)
		}
		// for the selected giant step, add all the needed small steps
		for k := new(big.Int).Exp(two, big.NewInt(i), nil); k.Cmp(giantStep) < 0; k.Add(k, one) {
			T[string(x.Bytes())] = new(big.Int).Set(k)
			x = x.Mod(x.Mul(x, g), c.p)
		}
		// make giant steps and search for the solution
		bound.Exp(two, big.NewInt(2*(i+1)), nil)
		for ; j.Cmp(bound) < 0; j.Add(j, giantStep) {
			if e, ok := T[string(y.Bytes())]; ok {
				retChan <- new(big.Int).Add(j, e)
				errChan <- nil
				return
			}
			y.Mod(y.Mul(y, z), c.p)
		}
		z.Mul(z, z)
		z.Mod(z, c.p)
	}

	retChan <- nil
	errChan <- NotFound
}
