// Package position models resume positions for a client tailing a MySQL-style
// binary log stream. A position knows how to express itself as a persisted
// mapping for durable checkpoint storage and as a resume mapping for the
// replication transport, across the two positioning schemes MySQL replication
// uses: GTID based and legacy file+offset based.
package position

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Keys used in persisted and resume mappings.
const (
	KeyGTID         = "gtid"
	KeyLogPos       = "log_pos"
	KeyLogFile      = "log_file"
	KeyOffset       = "offset"
	KeyAutoPosition = "auto_position"
)

// Mapping is the plain string-keyed form positions are persisted in and
// resumed from. Values are strings and non-negative integers; canonical
// emitted types are string, uint32 (log_pos) and int (offset).
type Mapping map[string]any

// Position is a resume point in a binlog stream.
//
// PersistedMap is the checkpoint form written to durable storage; ResumeMap is
// the form handed to the replication transport on (re)connect. The variant set
// is closed: GTIDPosition and LogPosition, with HeartbeatPosition as a
// refinement of LogPosition. All variants are immutable value objects; an
// update means constructing a new value.
type Position interface {
	PersistedMap() Mapping
	ResumeMap() (Mapping, error)

	isPosition()
}

// FromMapping rebuilds the concrete variant a persisted mapping was produced
// from. A mapping carrying a gtid key yields a GTIDPosition; otherwise both
// log_pos and log_file must be present for a LogPosition. Anything else fails
// with InvalidMappingError rather than guessing. Dispatch is on key presence,
// not value truthiness.
func FromMapping(m Mapping) (Position, error) {
	if raw, ok := m[KeyGTID]; ok {
		gtid, ok := raw.(string)
		if !ok {
			return nil, &InvalidMappingError{Mapping: m, Reason: fmt.Sprintf("gtid must be a string, got %T", raw)}
		}
		offset, err := mapInt(m, KeyOffset)
		if err != nil {
			return nil, err
		}
		return GTIDPosition{GTID: gtid, Offset: offset}, nil
	}

	_, hasPos := m[KeyLogPos]
	_, hasFile := m[KeyLogFile]
	if hasPos && hasFile {
		file, ok := m[KeyLogFile].(string)
		if !ok {
			return nil, &InvalidMappingError{Mapping: m, Reason: fmt.Sprintf("log_file must be a string, got %T", m[KeyLogFile])}
		}
		pos, err := mapInt(m, KeyLogPos)
		if err != nil {
			return nil, err
		}
		if int64(pos) > math.MaxUint32 {
			return nil, &InvalidMappingError{Mapping: m, Reason: "log_pos overflows uint32"}
		}
		offset, err := mapInt(m, KeyOffset)
		if err != nil {
			return nil, err
		}
		return LogPosition{LogPos: uint32(pos), LogFile: file, Offset: offset}, nil
	}

	return nil, &InvalidMappingError{Mapping: m, Reason: "need a gtid key or a log_pos/log_file pair"}
}

// mapInt reads key as a non-negative integer, tolerating the numeric types a
// JSON decode hands back (float64, json.Number) next to native Go integers.
// Absent keys read as 0.
func mapInt(m Mapping, key string) (int, error) {
	raw, ok := m[key]
	if !ok {
		return 0, nil
	}

	var (
		n        int64
		overflow bool
		valid    = true
	)
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		n, overflow = int64(v), uint64(v) > math.MaxInt64
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		n, overflow = int64(v), v > math.MaxInt64
	case float64:
		// JSON numbers above 2^53 are not exact integers anyway.
		n, valid = int64(v), v == math.Trunc(v) && v >= 0 && v <= 1<<53
	case json.Number:
		parsed, err := strconv.ParseInt(v.String(), 10, 64)
		n, valid = parsed, err == nil
	default:
		valid = false
	}
	if !valid || overflow || n < 0 || n > math.MaxInt {
		return 0, &InvalidMappingError{Mapping: m, Reason: fmt.Sprintf("%s must be a non-negative integer, got %v (%T)", key, raw, raw)}
	}
	return int(n), nil
}
