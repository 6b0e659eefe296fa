// Dolman
// Copyright (c) 2026 The Dolman Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dolman.
//
// Dolman is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dolman is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dolman.  If not, see <http://www.gnu.org/licenses/>.

// Package historydb persists a log of instance lifecycle events so
// clients can show what ran, when, and how it ended across daemon
// restarts.
package historydb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketEvents = "events"

// Event types recorded per lifecycle transition.
const (
	EventStarted = "started"
	EventExited  = "exited"
)

// Event is one recorded lifecycle transition of an emulator instance.
type Event struct {
	Time    time.Time `json:"time"`
	Index   *int      `json:"index,omitempty"`
	Type    string    `json:"type"`
	UseType string    `json:"useType"`
	Variant string    `json:"variant"`
	PID     int       `json:"pid"`
}

type HistoryDB struct {
	bdb *bolt.DB
}

// Open opens, or creates, the history database at path.
func Open(path string) (*HistoryDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists([]byte(bucketEvents))
		return err //nolint:wrapcheck // wrapped below with context
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create events bucket: %w", err)
	}

	return &HistoryDB{bdb: db}, nil
}

func (d *HistoryDB) Close() error {
	if err := d.bdb.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	return nil
}

// AddEvent appends one event to the log.
func (d *HistoryDB) AddEvent(evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = d.bdb.Update(func(txn *bolt.Tx) error {
		b := txn.Bucket([]byte(bucketEvents))
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, data) //nolint:wrapcheck // wrapped below with context
	})
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

// Events returns up to limit events, newest first. A limit of zero or
// less returns everything.
func (d *HistoryDB) Events(limit int) ([]Event, error) {
	events := make([]Event, 0)

	err := d.bdb.View(func(txn *bolt.Tx) error {
		c := txn.Bucket([]byte(bucketEvents)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(events) >= limit {
				break
			}

			var evt Event
			if err := json.Unmarshal(v, &evt); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}
			events = append(events, evt)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return events, nil
}
