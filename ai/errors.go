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


package ai

import "errors"

// Generative API error taxonomy. Each value is a distinct, caller-visible
// failure; none of them is retried by this package.
var (
	// ErrBadRequest indicates the upstream service rejected the request as
	// malformed.
	ErrBadRequest = errors.New("generative API rejected the request")

	// ErrAuthentication indicates the API key was rejected.
	ErrAuthentication = errors.New("generative API authentication failed")

	// ErrPermissionDenied indicates the key lacks access to the requested
	// model.
	ErrPermissionDenied = errors.New("generative API permission denied")

	// ErrRateLimited indicates the upstream rate limit was exceeded.
	ErrRateLimited = errors.New("generative API rate limit exceeded")

	// ErrMissingAPIKey indicates no credential was supplied. This is a
	// precondition failure raised before any request is sent.
	ErrMissingAPIKey = errors.New("API key required")
)
