// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package semver

import (
	"sync"
	"sync/atomic"
)

// Memo caches parse results keyed by input string so that hot paths, such
// as resolvers matching one range against thousands of versions, pay the
// parse cost once. Failures are cached alongside successes, so repeatedly
// probing an invalid string is as cheap as probing a valid one.
//
// A Memo is safe for concurrent use. Cached values are shared: callers
// must treat the returned *Version and *Range as immutable, which every
// method on them already does. The zero Memo is ready to use; a nil
// *Memo is also valid and simply parses every time without caching.
type Memo struct {
	mu       sync.RWMutex
	versions map[versionKey]versionEntry
	ranges   map[string]rangeEntry

	versionHits   atomic.Uint64
	versionMisses atomic.Uint64
	rangeHits     atomic.Uint64
	rangeMisses   atomic.Uint64
}

type versionKey struct {
	str  string
	mode ParseMode
}

type versionEntry struct {
	version *Version
	err     error
}

type rangeEntry struct {
	rng *Range
	err error
}

// MemoStats reports cache effectiveness, counted per table. VersionHits
// and VersionMisses count Parse lookups and RangeHits and RangeMisses
// count ParseRange lookups, one per call; Versions and Ranges count
// distinct cached entries, including cached failures.
type MemoStats struct {
	VersionHits   uint64
	VersionMisses uint64
	Versions      int

	RangeHits   uint64
	RangeMisses uint64
	Ranges      int
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{
		versions: make(map[versionKey]versionEntry),
		ranges:   make(map[string]rangeEntry),
	}
}

// Parse is Parse with caching. Identical str and mode pairs return the
// shared earlier result.
func (m *Memo) Parse(str string, mode ParseMode) (*Version, error) {
	if m == nil {
		return Parse(str, mode)
	}

	key := versionKey{str: str, mode: mode}

	m.mu.RLock()
	entry, ok := m.versions[key]
	m.mu.RUnlock()

	if ok {
		m.versionHits.Add(1)

		return entry.version, entry.err
	}

	m.versionMisses.Add(1)

	// Parse outside the lock; a concurrent call for the same key does
	// redundant work at worst, and its result is identical.
	v, err := Parse(str, mode)

	m.mu.Lock()
	if m.versions == nil {
		m.versions = make(map[versionKey]versionEntry)
	}
	if prior, ok := m.versions[key]; ok {
		entry = prior
	} else {
		entry = versionEntry{version: v, err: err}
		m.versions[key] = entry
	}
	m.mu.Unlock()

	return entry.version, entry.err
}

// ParseRange is ParseRange with caching.
func (m *Memo) ParseRange(str string) (*Range, error) {
	if m == nil {
		return ParseRange(str)
	}

	m.mu.RLock()
	entry, ok := m.ranges[str]
	m.mu.RUnlock()

	if ok {
		m.rangeHits.Add(1)

		return entry.rng, entry.err
	}

	m.rangeMisses.Add(1)

	r, err := ParseRange(str)

	m.mu.Lock()
	if m.ranges == nil {
		m.ranges = make(map[string]rangeEntry)
	}
	if prior, ok := m.ranges[str]; ok {
		entry = prior
	} else {
		entry = rangeEntry{rng: r, err: err}
		m.ranges[str] = entry
	}
	m.mu.Unlock()

	return entry.rng, entry.err
}

// Stats returns a snapshot of the memo's counters and sizes.
func (m *Memo) Stats() MemoStats {
	if m == nil {
		return MemoStats{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return MemoStats{
		VersionHits:   m.versionHits.Load(),
		VersionMisses: m.versionMisses.Load(),
		Versions:      len(m.versions),
		RangeHits:     m.rangeHits.Load(),
		RangeMisses:   m.rangeMisses.Load(),
		Ranges:        len(m.ranges),
	}
}

// Reset drops all cached entries and zeroes the counters.
func (m *Memo) Reset() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.versions = make(map[versionKey]versionEntry)
	m.ranges = make(map[string]rangeEntry)
	m.versionHits.Store(0)
	m.versionMisses.Store(0)
	m.rangeHits.Store(0)
	m.rangeMisses.Store(0)
}
