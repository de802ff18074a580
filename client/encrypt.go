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

package client

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/privacylayer/dmcfe/data"
	"github.com/privacylayer/dmcfe/internal"
	"github.com/privacylayer/dmcfe/sample"
)

// Ciphertext is a single client's encrypted slice: its index and L+2
// group elements c_i[0]=g^r, c_i[1]=h^r, c_i[k+2] for k in [0, L).
type Ciphertext struct {
	Index int
	C     data.Vector
}

// Encrypt produces the ciphertext for plaintext slice x under the
// client's Damgard keypair, masking it with the one-time pad before
// encryption. A fresh ephemeral r is drawn uniform in [2, q) for every
// call; it must never be reused for the same keypair.
//
// It returns ShapeMismatch if len(x) != MPK.L, or StateMissing if
// GenerateDamgard has not run.
func (c *Client) Encrypt(x data.Vector) (Ciphertext, error) {
	if len(x) != c.MPK.L {
		return Ciphertext{}, errors.Wrapf(internal.ShapeMismatch, "plaintext slice length %d != L %d", len(x), c.MPK.L)
	}
	if !c.damgardSet {
		return Ciphertext{}, errors.Wrap(internal.StateMissing, "Damgard keypair has not been generated")
	}

	r, err := sample.NewUniformRange(big.NewInt(2), c.MPK.Q).Sample()
	if err != nil {
		return Ciphertext{}, errors.Wrap(err, "could not sample ephemeral r")
	}

	masked := x.Add(c.u).Mod(c.MPK.Q)

	ct := make(data.Vector, c.MPK.L+2)
	ct[0] = new(big.Int).Exp(c.MPK.G, r, c.MPK.P)
	ct[1] = new(big.Int).Exp(c.MPK.H, r, c.MPK.P)

	for k := 0; k < c.MPK.L; k++ {
		t1 := new(big.Int).Exp(c.d[k], r, c.MPK.P)
		t2 := internal.ModExp(c.MPK.G, masked[k], c.MPK.P)
		ct[k+2] = new(big.Int).Mod(new(big.Int).Mul(t1, t2), c.MPK.P)
	}

	return Ciphertext{Index: c.Index, C: ct}, nil
}
