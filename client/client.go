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

// Package client implements one participant's share of the
// decentralized multi-client inner-product scheme: announcing a public
// Diffie-Hellman element, deriving a zero-sum share of correlated
// randomness with every other client, encrypting its plaintext slice,
// and deriving its share of a functional decryption key.
package client

import (
	"crypto/sha256"
	"math/big"

	"github.com/pkg/errors"

	"github.com/privacylayer/dmcfe/data"
	"github.com/privacylayer/dmcfe/internal"
	"github.com/privacylayer/dmcfe/params"
	"github.com/privacylayer/dmcfe/sample"
)

// Client holds one participant's private state across a protocol
// instance: its Diffie-Hellman secret, its zero-sum share matrix, its
// Damgard keypair, and its one-time pad. All of it is created once per
// instance and zeroized on completion or cancellation.
type Client struct {
	Index int
	MPK   *params.MPK

	sigma *big.Int // DH secret scalar, drawn in Announce
	pi    *big.Int // DH public element, g^sigma

	shareSet bool
	T        data.Matrix // zero-sum share matrix, set by SetShares

	damgardSet bool
	s, t       data.Vector // Damgard secret vectors
	d          data.Vector // Damgard public vector
	u          data.Vector // one-time pad vector
}

// New returns a new Client at the given index, bound to mpk. idx must
// lie in [0, mpk.N).
func New(idx int, mpk *params.MPK) (*Client, error) {
	if idx < 0 || idx >= mpk.N {
		return nil, errors.Wrapf(internal.ProtocolError, "client index %d out of range [0, %d)", idx, mpk.N)
	}

	return &Client{Index: idx, MPK: mpk}, nil
}

// Announcement is the Phase 1 broadcast message: a client's index and
// its public Diffie-Hellman element pi_i = g^sigma_i mod p.
type Announcement struct {
	Index int
	Pi    *big.Int
}

// Announce draws the client's Diffie-Hellman secret sigma_i uniform in
// [1, q) and returns the Announcement to broadcast to every other
// client.
func (c *Client) Announce() (Announcement, error) {
	sampler := sample.NewUniformRange(big.NewInt(1), c.MPK.Q)
	sigma, err := sampler.Sample()
	if err != nil {
		return Announcement{}, errors.Wrap(err, "could not sample DH secret")
	}

	c.sigma = sigma
	c.pi = new(big.Int).Exp(c.MPK.G, sigma, c.MPK.P)

	return Announcement{Index: c.Index, Pi: c.pi}, nil
}

// SetShares runs Phase 2: given every other client's Announcement, it
// derives the pairwise Diffie-Hellman elements eta_{i,k}, reshapes each
// into an N x L share matrix via deterministic seeded sampling, and
// sums them with the k<i / k>i sign convention so that the global
// N-client sum of share matrices is the zero matrix.
//
// It returns StateMissing if Announce has not run yet, and
// ProtocolError if an announcement for some k != c.Index is missing or
// if any peer's public element is the degenerate value 1.
func (c *Client) SetShares(announcements []Announcement) error {
	if c.sigma == nil {
		return errors.Wrap(internal.StateMissing, "client has not announced yet")
	}

	byIndex := make(map[int]*big.Int, len(announcements))
	for _, a := range announcements {
		byIndex[a.Index] = a.Pi
	}

	one := big.NewInt(1)
	T := data.NewConstantMatrix(c.MPK.N, c.MPK.L, big.NewInt(0))

	for k := 0; k < c.MPK.N; k++ {
		if k == c.Index {
			continue
		}

		piK, ok := byIndex[k]
		if !ok {
			return errors.Wrapf(internal.ProtocolError, "missing announcement from client %d", k)
		}
		if piK.Cmp(one) == 0 {
			return errors.Wrapf(internal.ProtocolError, "degenerate public element from client %d", k)
		}

		eta := new(big.Int).Exp(piK, c.sigma, c.MPK.P)
		key := seedKey(eta)

		A, err := data.NewRandomDetMatrix(c.MPK.N, c.MPK.L, sample.NewUniformDet(big.NewInt(0), c.MPK.Q, &key))
		if err != nil {
			return errors.Wrap(err, "could not derive share matrix")
		}

		if k < c.Index {
			T, err = T.Add(A)
		} else {
			T, err = T.Sub(A)
		}
		if err != nil {
			return errors.Wrap(err, "could not accumulate share matrix")
		}
		T = T.Mod(c.MPK.Q)
	}

	c.T = T
	c.shareSet = true

	return nil
}

// seedKey derives the 32-byte salsa20 key used to seed a pair's
// deterministic share matrix from their shared Diffie-Hellman element,
// via a sha256-of-decimal-string construction that turns a DH integer
// into a fixed-size symmetric key.
func seedKey(eta *big.Int) [32]byte {
	return sha256.Sum256([]byte(eta.String()))
}

// GenerateDamgard runs Phase 3: independently of the share exchange, it
// draws the Damgard secret vectors s_i, t_i (each entry uniform in [2,
// q)), the one-time pad vector u_i (uniform in [0, q)), and computes
// the Damgard public vector d_i[k] = g^s_i[k] * h^t_i[k] mod p.
func (c *Client) GenerateDamgard() error {
	l := c.MPK.L
	damgardSampler := sample.NewUniformRange(big.NewInt(2), c.MPK.Q)

	s, err := data.NewRandomVector(l, damgardSampler)
	if err != nil {
		return errors.Wrap(err, "could not sample Damgard s vector")
	}
	t, err := data.NewRandomVector(l, damgardSampler)
	if err != nil {
		return errors.Wrap(err, "could not sample Damgard t vector")
	}
	u, err := data.NewRandomVector(l, sample.NewUniform(c.MPK.Q))
	if err != nil {
		return errors.Wrap(err, "could not sample one-time pad vector")
	}

	d := make(data.Vector, l)
	for k := 0; k < l; k++ {
		y1 := new(big.Int).Exp(c.MPK.G, s[k], c.MPK.P)
		y2 := new(big.Int).Exp(c.MPK.H, t[k], c.MPK.P)
		d[k] = new(big.Int).Mod(new(big.Int).Mul(y1, y2), c.MPK.P)
	}

	c.s, c.t, c.u, c.d = s, t, u, d
	c.damgardSet = true

	return nil
}

// Zeroize overwrites every piece of per-client private state in place,
// satisfying the requirement that a client's secret vectors must be
// released on cancellation between protocol barriers.
func (c *Client) Zeroize() {
	zero := func(v data.Vector) {
		for _, x := range v {
			x.SetInt64(0)
		}
	}
	zeroMat := func(m data.Matrix) {
		for _, row := range m {
			zero(row)
		}
	}

	if c.sigma != nil {
		c.sigma.SetInt64(0)
	}
	zeroMat(c.T)
	zero(c.s)
	zero(c.t)
	zero(c.u)
	zero(c.d)
}
