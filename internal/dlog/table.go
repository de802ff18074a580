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

package dlog

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

// Table is a precomputed {g^i mod p -> i} lookup for i in
// [-FuncBound, FuncBound], keyed by the canonical decimal digit string
// of the group element. Reading the table must preserve that canonical
// form bit-exact, since the lookup key is the ciphertext element
// rendered the same way the table-building tool rendered it.
type Table struct {
	G         *big.Int
	FuncBound int64
	entries   map[string]int64
}

// tableRecord mirrors the JSON document produced by the offline
// table-generation tool: a generator g, the bound B the table covers,
// and the {decimal-digit-string: int} map itself.
type tableRecord struct {
	G         string           `json:"g"`
	FuncBound int64            `json:"func_bound"`
	DlogTable map[string]int64 `json:"dlog_table"`
}

// LoadTable parses raw into a Table.
func LoadTable(raw []byte) (*Table, error) {
	var rec tableRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "could not parse discrete-log table record")
	}

	g, ok := new(big.Int).SetString(rec.G, 10)
	if !ok {
		return nil, errors.New("g is not a valid decimal integer")
	}

	return &Table{
		G:         g,
		FuncBound: rec.FuncBound,
		entries:   rec.DlogTable,
	}, nil
}

// NewTable builds a Table in memory for i in [-bound, bound], the same
// range the offline tool's generate_config_files populates, given
// generator g and modulus p. It is exercised by tests and by callers
// that want a precomputed table without a config file round-trip.
func NewTable(g, p *big.Int, bound int64) *Table {
	invG := new(big.Int).ModInverse(g, p)
	entries := make(map[string]int64, 2*bound+1)
	for i := int64(0); i <= bound; i++ {
		entries[new(big.Int).Exp(g, big.NewInt(i), p).String()] = i
		if i != 0 {
			entries[new(big.Int).Exp(invG, big.NewInt(i), p).String()] = -i
		}
	}

	return &Table{G: g, FuncBound: bound, entries: entries}
}

// Lookup returns the integer i such that h == g^i mod p, if present in
// the table.
func (t *Table) Lookup(h *big.Int) (*big.Int, bool) {
	i, ok := t.entries[h.String()]
	if !ok {
		return nil, false
	}

	return big.NewInt(i), true
}
