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

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toyGroup returns the S1 scenario's tiny safe-prime group: q=11,
// p=23, g a generator of the order-11 subgroup, h=g^2.
func toyGroup() (p, q, g, h *big.Int) {
	p = big.NewInt(23)
	q = big.NewInt(11)
	g = big.NewInt(4) // 4 has order 11 in Z*_23
	h = new(big.Int).Exp(g, big.NewInt(2), p)
	return
}

func TestNew_ToyGroup(t *testing.T) {
	p, q, g, h := toyGroup()

	mpk, err := New(p, q, g, h, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, mpk.N)
	assert.Equal(t, 2, mpk.L)
}

func TestNew_RejectsNonPrimeQ(t *testing.T) {
	p, _, g, h := toyGroup()
	_, err := New(p, big.NewInt(12), g, h, 2, 2)
	assert.Error(t, err)
}

func TestNew_RejectsPNotTwoQPlusOne(t *testing.T) {
	_, q, g, h := toyGroup()
	_, err := New(big.NewInt(47), q, g, h, 2, 2)
	assert.Error(t, err)
}

func TestNew_RejectsNonGenerator(t *testing.T) {
	p, q, _, h := toyGroup()
	// 22 == -1 mod 23, has order 2, not a generator of the order-11 subgroup.
	_, err := New(p, q, big.NewInt(22), h, 2, 2)
	assert.Error(t, err)
}

func TestNew_RejectsTrivialGenerator(t *testing.T) {
	p, q, g, _ := toyGroup()
	_, err := New(p, q, g, big.NewInt(1), 2, 2)
	assert.Error(t, err)
}

func TestNew_RejectsSmallPartyCount(t *testing.T) {
	p, q, g, h := toyGroup()
	_, err := New(p, q, g, h, 1, 2)
	assert.Error(t, err)
}
