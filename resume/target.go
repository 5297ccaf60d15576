// Package resume converts positions into the values the replication
// transport consumes when (re)connecting: a GTID set for auto positioning
// or a binlog file position for the legacy scheme.
package resume

import (
	"fmt"

	"github.com/go-mysql-org/go-mysql/mysql"

	"github.com/tailpoint/tailpoint/position"
)

type mode int

const (
	modeEmpty mode = iota
	modeGTID
	modeFile
)

// Target is the transport side of a resume mapping. It holds exactly one of
// a GTID set, a file position, or nothing at all (tail from wherever the
// server currently is). Starting a syncer from it stays the caller's job.
type Target struct {
	gtidSet mysql.GTIDSet
	filePos mysql.Position
	mode    mode
}

// FromPosition derives the transport target from a position's resume
// mapping. A malformed GTID surfaces as position.MalformedGTIDError; an
// auto position interval the transport cannot parse surfaces wrapped.
func FromPosition(p position.Position) (Target, error) {
	m, err := p.ResumeMap()
	if err != nil {
		return Target{}, err
	}

	if raw, found := m[position.KeyAutoPosition]; found {
		interval, ok := raw.(string)
		if !ok {
			return Target{}, fmt.Errorf("auto position must be a string, got %T", raw)
		}
		set, err := mysql.ParseMysqlGTIDSet(interval)
		if err != nil {
			return Target{}, fmt.Errorf("failed to parse auto position %q: %w", interval, err)
		}
		return Target{gtidSet: set, mode: modeGTID}, nil
	}

	rawPos, posFound := m[position.KeyLogPos]
	rawFile, fileFound := m[position.KeyLogFile]
	if posFound && fileFound {
		pos, ok := rawPos.(uint32)
		if !ok {
			return Target{}, fmt.Errorf("log position must be a uint32, got %T", rawPos)
		}
		file, ok := rawFile.(string)
		if !ok {
			return Target{}, fmt.Errorf("log file must be a string, got %T", rawFile)
		}
		return Target{filePos: mysql.Position{Name: file, Pos: pos}, mode: modeFile}, nil
	}

	return Target{}, nil
}

// IsGTID reports whether the target carries a GTID set.
func (t Target) IsGTID() bool {
	return t.mode == modeGTID
}

// IsFile reports whether the target carries a binlog file position.
func (t Target) IsFile() bool {
	return t.mode == modeFile
}

// IsEmpty reports whether the target carries nothing to resume from.
func (t Target) IsEmpty() bool {
	return t.mode == modeEmpty
}

// GTIDSet returns the auto position set; nil unless IsGTID.
func (t Target) GTIDSet() mysql.GTIDSet {
	return t.gtidSet
}

// FilePosition returns the binlog file position; zero unless IsFile.
func (t Target) FilePosition() mysql.Position {
	return t.filePos
}

func (t Target) String() string {
	switch t.mode {
	case modeGTID:
		return fmt.Sprintf("gtid(%s)", t.gtidSet.String())
	case modeFile:
		return fmt.Sprintf("file(%s:%d)", t.filePos.Name, t.filePos.Pos)
	default:
		return "none"
	}
}
