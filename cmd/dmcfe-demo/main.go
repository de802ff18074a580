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

// Command dmcfe-demo wires up a small decentralized multi-client
// inner-product instance end to end over a set of in-process client
// goroutines, and prints the aggregator's recovered inner product. It
// is not a supported CLI surface, just an executable demonstration of
// how the params/client/aggregator packages fit together.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"sync"

	"github.com/privacylayer/dmcfe/aggregator"
	"github.com/privacylayer/dmcfe/client"
	"github.com/privacylayer/dmcfe/data"
	"github.com/privacylayer/dmcfe/internal/keygen"
	"github.com/privacylayer/dmcfe/params"
)

func main() {
	numClients := flag.Int("clients", 3, "number of clients N")
	vecLen := flag.Int("len", 2, "per-client vector length L")
	bits := flag.Int("bits", 64, "bit length of the safe-prime modulus p")
	flag.Parse()

	group, err := keygen.NewGroupParams(*bits)
	if err != nil {
		log.Fatalf("could not generate group parameters: %v", err)
	}

	mpk, err := params.New(group.P, group.Q, group.G, group.H, *numClients, *vecLen)
	if err != nil {
		log.Fatalf("could not build MPK: %v", err)
	}

	x := data.NewConstantMatrix(mpk.N, mpk.L, big.NewInt(0))
	y := data.NewConstantMatrix(mpk.N, mpk.L, big.NewInt(1))
	for i := 0; i < mpk.N; i++ {
		for k := 0; k < mpk.L; k++ {
			x[i][k] = big.NewInt(int64(i + k + 1))
		}
	}

	clients := make([]*client.Client, mpk.N)
	for i := 0; i < mpk.N; i++ {
		c, err := client.New(i, mpk)
		if err != nil {
			log.Fatalf("client %d: %v", i, err)
		}
		clients[i] = c
	}

	announcements := announceAll(clients)

	var wg sync.WaitGroup
	errs := make([]error, mpk.N)
	for i, c := range clients {
		wg.Add(1)
		go func(i int, c *client.Client) {
			defer wg.Done()
			if err := c.SetShares(announcements); err != nil {
				errs[i] = err
				return
			}
			errs[i] = c.GenerateDamgard()
		}(i, c)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			log.Fatalf("client %d setup: %v", i, err)
		}
	}

	ciphertexts := make([]client.Ciphertext, mpk.N)
	shares := make([]client.KeyShare, mpk.N)
	for i, c := range clients {
		ct, err := c.Encrypt(x[i])
		if err != nil {
			log.Fatalf("client %d encrypt: %v", i, err)
		}
		ciphertexts[i] = ct

		ks, err := c.DeriveKeyShare(y)
		if err != nil {
			log.Fatalf("client %d derive key share: %v", i, err)
		}
		shares[i] = ks
	}

	agg := aggregator.New(mpk)
	// x and y entries are both small non-negative integers here, so the
	// true inner product cannot exceed N*L times the largest entry;
	// narrowing the discrete-log search to that range keeps the demo's
	// baby-step giant-step pass fast regardless of -bits.
	maxEntry := int64(mpk.N + mpk.L)
	agg.Bound = big.NewInt(int64(mpk.N*mpk.L) * maxEntry)
	result, err := agg.Decrypt(ciphertexts, shares, y)
	if err != nil {
		log.Fatalf("aggregation failed: %v", err)
	}

	fmt.Printf("recovered inner product: %s\n", result.String())

	for _, c := range clients {
		c.Zeroize()
	}
}

func announceAll(clients []*client.Client) []client.Announcement {
	announcements := make([]client.Announcement, len(clients))
	for i, c := range clients {
		a, err := c.Announce()
		if err != nil {
			log.Fatalf("client %d announce: %v", i, err)
		}
		announcements[i] = a
	}
	return announcements
}
