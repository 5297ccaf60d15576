package position

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Position = HeartbeatPosition{}

func TestHeartbeatPositionEqual(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	base := NewHeartbeatPosition(7, ts, 433, "binlog.001")

	testCases := []struct {
		name  string
		other HeartbeatPosition
		want  bool
	}{
		{
			name:  "identical",
			other: NewHeartbeatPosition(7, ts, 433, "binlog.001"),
			want:  true,
		},
		{
			name: "row offset is ignored",
			other: HeartbeatPosition{
				LogPosition: LogPosition{LogPos: 433, LogFile: "binlog.001", Offset: 25},
				Serial:      7,
				Timestamp:   ts,
			},
			want: true,
		},
		{
			name:  "same instant in another zone",
			other: NewHeartbeatPosition(7, ts.In(time.FixedZone("UTC+2", 2*60*60)), 433, "binlog.001"),
			want:  true,
		},
		{
			name:  "different serial",
			other: NewHeartbeatPosition(8, ts, 433, "binlog.001"),
			want:  false,
		},
		{
			name:  "different timestamp",
			other: NewHeartbeatPosition(7, ts.Add(time.Second), 433, "binlog.001"),
			want:  false,
		},
		{
			name:  "different file",
			other: NewHeartbeatPosition(7, ts, 433, "binlog.002"),
			want:  false,
		},
		{
			name:  "different log pos",
			other: NewHeartbeatPosition(7, ts, 434, "binlog.001"),
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Equal(tc.other))
			assert.Equal(t, tc.want, tc.other.Equal(base))
		})
	}
}

func TestHeartbeatPositionString(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	hb := NewHeartbeatPosition(123, ts, 433, "binlog.000017")

	got := hb.String()
	assert.Equal(t,
		"Serial:     123\n"+
			"Timestamp:  2024-06-01 12:30:00 +0000 UTC\n"+
			"File:       binlog.000017\n"+
			"Position:   433",
		got)
}

func TestHeartbeatPositionMappingsComeFromLogPosition(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	hb := NewHeartbeatPosition(123, ts, 433, "binlog.000017")

	persisted := hb.PersistedMap()
	assert.Equal(t, Mapping{KeyLogPos: uint32(433), KeyLogFile: "binlog.000017"}, persisted)

	resumed, err := hb.ResumeMap()
	require.NoError(t, err)
	assert.Equal(t, Mapping{KeyLogPos: uint32(433), KeyLogFile: "binlog.000017"}, resumed)

	// Heartbeat metadata never leaks into either mapping.
	for _, m := range []Mapping{persisted, resumed} {
		assert.NotContains(t, m, "hb_serial")
		assert.NotContains(t, m, "hb_timestamp")
	}
}
