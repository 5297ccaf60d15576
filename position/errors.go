package position

import "fmt"

// InvalidMappingError reports a persisted mapping that identifies no
// position: no gtid key and no complete log_pos/log_file pair, or a value of
// the wrong shape. The rejected mapping rides along for diagnostics.
type InvalidMappingError struct {
	Mapping Mapping
	Reason  string
}

func (e *InvalidMappingError) Error() string {
	return fmt.Sprintf("invalid position mapping %v: %s", e.Mapping, e.Reason)
}

// MalformedGTIDError reports a GTID string that does not split into
// "source_id:transaction_id" with an integer transaction id.
type MalformedGTIDError struct {
	GTID string
}

func (e *MalformedGTIDError) Error() string {
	return fmt.Sprintf("malformed gtid %q: want \"source_id:transaction_id\"", e.GTID)
}
