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
)

// KeyShare is a client's contribution to the functional decryption key
// for a weight matrix y: the unmasking scalar mu_i and the two Damgard
// unblinders k1_i, k2_i.
type KeyShare struct {
	Index int
	Mu    *big.Int
	K1    *big.Int
	K2    *big.Int
}

// DeriveKeyShare computes the client's key share for weight matrix y,
// shaped N x L. mu_i = <u_i, y_i> + <T_i, y> (mod q), the Frobenius
// inner product over the full matrix; k1_i = <s_i, y_i> and k2_i =
// <t_i, y_i> (mod q). Reductions are modulo q, the order of the
// subgroup the exponents of g and h live in, not modulo p-1.
//
// It is deterministic given stable client state and y: calling it again
// for a different y, with the same Damgard keypair and share matrix,
// yields a correct and independent key share.
//
// It returns ShapeMismatch if y is not N x L, or StateMissing if
// SetShares or GenerateDamgard have not run.
func (c *Client) DeriveKeyShare(y data.Matrix) (KeyShare, error) {
	if !y.CheckDims(c.MPK.N, c.MPK.L) {
		return KeyShare{}, errors.Wrapf(internal.ShapeMismatch, "weight matrix is %dx%d, want %dx%d", y.Rows(), y.Cols(), c.MPK.N, c.MPK.L)
	}
	if !c.shareSet {
		return KeyShare{}, errors.Wrap(internal.StateMissing, "share matrix has not been installed")
	}
	if !c.damgardSet {
		return KeyShare{}, errors.Wrap(internal.StateMissing, "Damgard keypair has not been generated")
	}

	yi := y[c.Index]

	uDotYi, err := c.u.Dot(yi)
	if err != nil {
		return KeyShare{}, errors.Wrap(err, "could not compute <u_i, y_i>")
	}

	tDotY, err := c.T.Dot(y)
	if err != nil {
		return KeyShare{}, errors.Wrap(err, "could not compute <T_i, y>")
	}

	mu := new(big.Int).Add(uDotYi, tDotY)
	mu.Mod(mu, c.MPK.Q)

	k1, err := c.s.Dot(yi)
	if err != nil {
		return KeyShare{}, errors.Wrap(err, "could not compute <s_i, y_i>")
	}
	k1.Mod(k1, c.MPK.Q)

	k2, err := c.t.Dot(yi)
	if err != nil {
		return KeyShare{}, errors.Wrap(err, "could not compute <t_i, y_i>")
	}
	k2.Mod(k2, c.MPK.Q)

	return KeyShare{Index: c.Index, Mu: mu, K1: k1, K2: k2}, nil
}
