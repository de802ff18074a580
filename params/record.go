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
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

// GroupRecord carries the stringified subgroup parameters of a
// SecParamRecord.
type GroupRecord struct {
	P string `json:"p"`
	Q string `json:"q"`
	H string `json:"h"`
}

// SecParamRecord is the on-disk configuration record produced by an
// offline parameter-generation tool. Its field layout mirrors the JSON
// document generate_config_files writes: a top-level generator g, a
// security parameter bit length, and a nested group record.
type SecParamRecord struct {
	G        string      `json:"g"`
	SecParam int         `json:"sec_param"`
	Group    GroupRecord `json:"group"`
}

// ParseSecParamRecord unmarshals a SecParamRecord from raw JSON.
func ParseSecParamRecord(raw []byte) (*SecParamRecord, error) {
	var rec SecParamRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "could not parse security parameter record")
	}

	return &rec, nil
}

// MPK converts a SecParamRecord into a validated MPK, binding in the
// caller-supplied party count n and per-client vector length l, neither
// of which the record itself persists.
func (rec *SecParamRecord) MPK(n, l int) (*MPK, error) {
	p, ok := new(big.Int).SetString(rec.Group.P, 10)
	if !ok {
		return nil, errors.New("group.p is not a valid decimal integer")
	}
	q, ok := new(big.Int).SetString(rec.Group.Q, 10)
	if !ok {
		return nil, errors.New("group.q is not a valid decimal integer")
	}
	h, ok := new(big.Int).SetString(rec.Group.H, 10)
	if !ok {
		return nil, errors.New("group.h is not a valid decimal integer")
	}
	g, ok := new(big.Int).SetString(rec.G, 10)
	if !ok {
		return nil, errors.New("g is not a valid decimal integer")
	}

	return New(p, q, g, h, n, l)
}

// LoadSecParamRecord parses raw and binds n, l in one call.
func LoadSecParamRecord(raw []byte, n, l int) (*MPK, error) {
	rec, err := ParseSecParamRecord(raw)
	if err != nil {
		return nil, err
	}

	return rec.MPK(n, l)
}
