// Copyright 2024 The Axiograph Authors.
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

package plane

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// AcceptedHistory returns, most-recent-last, up to limit entries from
// accepted_plane.log.jsonl (0 means unbounded). The directory layout names
// this file but leaves its read side unspecified; this bounded-tail replay
// is the read-side API promote's audit trail implies.
func (p *Plane) AcceptedHistory(limit int) ([]acceptedLogEntry, error) {
	var entries []acceptedLogEntry
	if err := readJSONLTail(p.acceptedLog(), limit, func(line []byte) error {
		var e acceptedLogEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

// PathDBHistory is AcceptedHistory's analogue over pathdb_wal.log.jsonl.
func (p *Plane) PathDBHistory(limit int) ([]walLogEntry, error) {
	var entries []walLogEntry
	if err := readJSONLTail(p.pathdbWalLog(), limit, func(line []byte) error {
		var e walLogEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

// readJSONLTail reads path line by line, keeping only the last `limit`
// lines when limit > 0, then invokes decode on each kept line in file
// order. Lines are collected before any decode call, so decode runs only
// for the lines that are returned. A missing file yields no lines.
func readJSONLTail(path string, limit int, decode func([]byte) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "plane: opening %s", path)
	}
	defer f.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		lines = append(lines, line)
		if limit > 0 && len(lines) > limit {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "plane: scanning %s", path)
	}

	for _, line := range lines {
		if err := decode(line); err != nil {
			return errors.Wrapf(err, "plane: decoding line in %s", path)
		}
	}
	return nil
}
