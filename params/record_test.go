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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecParamRecord(t *testing.T) {
	raw := []byte(`{"g":"4","sec_param":8,"group":{"p":"23","q":"11","h":"16"}}`)

	rec, err := ParseSecParamRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "4", rec.G)
	assert.Equal(t, 8, rec.SecParam)
	assert.Equal(t, "23", rec.Group.P)
	assert.Equal(t, "11", rec.Group.Q)
	assert.Equal(t, "16", rec.Group.H)
}

func TestLoadSecParamRecord(t *testing.T) {
	raw := []byte(`{"g":"4","sec_param":8,"group":{"p":"23","q":"11","h":"16"}}`)

	mpk, err := LoadSecParamRecord(raw, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, mpk.N)
	assert.Equal(t, 2, mpk.L)
	assert.Equal(t, "23", mpk.P.String())
}

func TestLoadSecParamRecord_MalformedInteger(t *testing.T) {
	raw := []byte(`{"g":"4","sec_param":8,"group":{"p":"not-a-number","q":"11","h":"16"}}`)

	_, err := LoadSecParamRecord(raw, 2, 2)
	assert.Error(t, err)
}

func TestLoadSecParamRecord_MalformedJSON(t *testing.T) {
	_, err := LoadSecParamRecord([]byte(`{not json`), 2, 2)
	assert.Error(t, err)
}
