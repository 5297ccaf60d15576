package position

import (
	"fmt"
	"strconv"
	"strings"
)

// GTIDPosition locates a resume point by global transaction identifier, plus
// an optional row offset into that transaction for mid-transaction resume.
//
// The GTID is "<source_id>:<transaction_id>" with a positive decimal
// transaction id. A zero Offset means "no offset": zero and absent are
// deliberately indistinguishable in the persisted form.
type GTIDPosition struct {
	GTID   string
	Offset int
}

func (p GTIDPosition) isPosition() {}

// PersistedMap includes the gtid only when set and the offset only when
// positive. A checkpoint written with Offset 0 reads back as having none;
// downstream consumers rely on the omission.
func (p GTIDPosition) PersistedMap() Mapping {
	m := Mapping{}
	if p.GTID != "" {
		m[KeyGTID] = p.GTID
	}
	if p.Offset > 0 {
		m[KeyOffset] = p.Offset
	}
	return m
}

// ResumeMap emits the auto_position interval handed to the replication
// transport. The interval "sid:1-N" means transactions 1..N-1 are fully
// consumed and streaming resumes at N:
//
//   - with a positive Offset the stored transaction was only partially
//     applied, so the interval stops before it and the transaction streams
//     again (skipping the already-applied rows is the caller's job);
//   - with no offset the stored transaction completed, so the interval moves
//     one past it.
//
// A GTID that does not split into source id and integer transaction id fails
// with MalformedGTIDError rather than producing a wrong interval.
func (p GTIDPosition) ResumeMap() (Mapping, error) {
	m := Mapping{}
	if p.GTID == "" {
		return m, nil
	}

	sid, txn, err := splitGTID(p.GTID)
	if err != nil {
		return nil, err
	}

	upper := txn + 1
	if p.Offset > 0 {
		upper = txn
	}
	m[KeyAutoPosition] = fmt.Sprintf("%s:1-%d", sid, upper)
	return m, nil
}

// splitGTID performs the mechanical "<source_id>:<transaction_id>" split.
// Only the split itself and the integer parse are checked; source ids stay
// opaque.
func splitGTID(gtid string) (string, uint64, error) {
	parts := strings.Split(gtid, ":")
	if len(parts) != 2 {
		return "", 0, &MalformedGTIDError{GTID: gtid}
	}
	txn, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", 0, &MalformedGTIDError{GTID: gtid}
	}
	return parts[0], txn, nil
}
