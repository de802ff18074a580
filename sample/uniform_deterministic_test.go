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

package sample_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacylayer/dmcfe/sample"
)

func TestUniformDet_Deterministic(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}

	s1 := sample.NewUniformDet(big.NewInt(0), big.NewInt(1000), &key)
	s2 := sample.NewUniformDet(big.NewInt(0), big.NewInt(1000), &key)

	assert.Equal(t, s1.SampleN(10), s2.SampleN(10), "the same key must reproduce the same sequence")
}

func TestUniformDet_DifferentKeysDiverge(t *testing.T) {
	var keyA, keyB [32]byte
	for i := range keyA {
		keyA[i] = byte(i)
		keyB[i] = byte(i + 1)
	}

	sA := sample.NewUniformDet(big.NewInt(0), big.NewInt(1000), &keyA)
	sB := sample.NewUniformDet(big.NewInt(0), big.NewInt(1000), &keyB)

	assert.NotEqual(t, sA.SampleN(10), sB.SampleN(10), "different keys should not collide across 10 draws")
}

func TestUniformDet_RespectsBounds(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(7 * i)
	}

	lo, hi := big.NewInt(5), big.NewInt(12)
	s := sample.NewUniformDet(lo, hi, &key)

	for _, v := range s.SampleN(50) {
		require.True(t, v.Cmp(lo) >= 0 && v.Cmp(hi) < 0, "value %s out of [%s, %s)", v, lo, hi)
	}
}
