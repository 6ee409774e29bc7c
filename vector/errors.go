// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vector

import "errors"

var (
	// ErrCollectionExists is returned when creating a collection whose name
	// is already taken.
	ErrCollectionExists = errors.New("collection already exists")

	// ErrCollectionNotFound is returned when operating on a dropped or
	// never-created collection.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrDimensionMismatch is returned when an uploaded or queried dense
	// vector does not match the collection's configured dimensionality.
	ErrDimensionMismatch = errors.New("dense vector dimension mismatch")
)
