package position

import (
	"fmt"
	"time"
)

// HeartbeatPosition is the location of a heartbeat event inside a log file,
// together with the heartbeat's sequence number and emission time. The extra
// fields exist for liveness and lag monitoring only: both mapping conversions
// come unchanged from LogPosition, so serial and timestamp never enter a
// checkpoint or a resume handshake.
type HeartbeatPosition struct {
	LogPosition

	Serial    int64
	Timestamp time.Time
}

// NewHeartbeatPosition builds a heartbeat position with no row offset, which
// is how heartbeats are observed (a heartbeat is never mid-transaction).
func NewHeartbeatPosition(serial int64, ts time.Time, logPos uint32, logFile string) HeartbeatPosition {
	return HeartbeatPosition{
		LogPosition: LogPosition{LogPos: logPos, LogFile: logFile},
		Serial:      serial,
		Timestamp:   ts,
	}
}

// Equal reports whether two heartbeats are the same observation: same serial,
// timestamp and log coordinates. The row offset is deliberately not part of
// the comparison.
func (p HeartbeatPosition) Equal(o HeartbeatPosition) bool {
	return p.Serial == o.Serial &&
		p.Timestamp.Equal(o.Timestamp) &&
		p.LogFile == o.LogFile &&
		p.LogPos == o.LogPos
}

// String renders the heartbeat for diagnostics. The layout is fixed but
// presentation-only; nothing should parse it.
func (p HeartbeatPosition) String() string {
	return fmt.Sprintf("Serial:     %d\nTimestamp:  %s\nFile:       %s\nPosition:   %d",
		p.Serial, p.Timestamp, p.LogFile, p.LogPos)
}
