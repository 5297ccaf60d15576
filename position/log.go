package position

// LogPosition locates a resume point by binlog file name and byte offset,
// plus an optional row offset into the event at that location. File and byte
// position identify a location jointly; one without the other never enters a
// mapping.
type LogPosition struct {
	LogPos  uint32
	LogFile string
	Offset  int
}

func (p LogPosition) isPosition() {}

// PersistedMap includes log_pos and log_file together when both are set, and
// the offset only when positive (the same zero-means-absent convention as
// GTIDPosition).
func (p LogPosition) PersistedMap() Mapping {
	m := Mapping{}
	if p.LogPos > 0 && p.LogFile != "" {
		m[KeyLogPos] = p.LogPos
		m[KeyLogFile] = p.LogFile
	}
	if p.Offset > 0 {
		m[KeyOffset] = p.Offset
	}
	return m
}

// ResumeMap never carries the row offset: a file-based client reconnects at
// the exact byte position and the caller replays its stored offset after the
// stream is re-established.
func (p LogPosition) ResumeMap() (Mapping, error) {
	m := Mapping{}
	if p.LogPos > 0 && p.LogFile != "" {
		m[KeyLogPos] = p.LogPos
		m[KeyLogFile] = p.LogFile
	}
	return m, nil
}
