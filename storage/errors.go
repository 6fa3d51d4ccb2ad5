// Copyright 2025 Perceptic
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


package storage

import "errors"

var (
	// ErrStoreUnavailable indicates the backing service could not be
	// reached or initialized.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store is closed")

	// ErrWriteFailed indicates a single write was rejected by the store.
	ErrWriteFailed = errors.New("store write failed")

	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("record not found")
)
