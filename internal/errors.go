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

package internal

import (
	"errors"
)

// ShapeMismatch is returned when a vector or matrix does not match the
// (N, L) dimensions fixed by the public parameters it is used against.
var ShapeMismatch = errors.New("dimensions do not match the scheme's (N, L)")

// StateMissing is returned when an operation requires prior setup
// (Damgard keypair, installed share matrix) that has not yet run.
var StateMissing = errors.New("required client state has not been initialized")

// ProtocolError is returned when a received value lies outside the
// expected subgroup, a peer index is out of range, or a required
// broadcast round is incomplete.
var ProtocolError = errors.New("protocol precondition violated")
