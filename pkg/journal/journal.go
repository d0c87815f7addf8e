// Package journal records dispatched messages in a bbolt database so a
// session can be replayed later.
//
// Records are msgpack-encoded and keyed by their big-endian sequence
// number, so a cursor walks them in dispatch order.
package journal

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"

	"github.com/vango-dev/livetree/internal/errors"
)

const bucketMessages = "messages"

// ErrNoRecord is returned when no record has the requested sequence number.
var ErrNoRecord = errors.Newf(errors.CategoryJournal, "no record with that sequence number")

// Record is one journaled message.
type Record struct {
	Seq     uint64    `msgpack:"seq"`
	Type    string    `msgpack:"type"`    // Go type of the message
	Payload []byte    `msgpack:"payload"` // msgpack-encoded message
	At      time.Time `msgpack:"at"`
}

// Journal is an append-only message log.
type Journal struct {
	db     *bolt.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Journal) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// Open opens or creates the journal database at path.
func Open(path string, opts ...Option) (*Journal, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.New("E020").WithDetailf("opening %s", path).Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketMessages))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.New("E020").WithDetail("initializing the messages bucket").Wrap(err)
	}

	j := &Journal{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.logger = j.logger.With("component", "journal", "path", path)
	return j, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append encodes msg and stores it under the next sequence number.
func (j *Journal) Append(msg any) (uint64, error) {
	payload, err := msgpack.Marshal(msg)
	if err != nil {
		return 0, errors.New("E021").WithDetailf("encoding %T", msg).Wrap(err)
	}

	var seq uint64
	err = j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMessages))
		next, err := b.NextSequence()
		if err != nil {
			return err
		}
		seq = next
		value, err := msgpack.Marshal(Record{
			Seq:     seq,
			Type:    fmt.Sprintf("%T", msg),
			Payload: payload,
			At:      j.now().UTC(),
		})
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), value)
	})
	if err != nil {
		return 0, errors.New("E020").WithDetail("appending a record").Wrap(err)
	}
	j.logger.Debug("message journaled", "seq", seq, "type", fmt.Sprintf("%T", msg))
	return seq, nil
}

// NextSeq returns the sequence number the next Append will use.
func (j *Journal) NextSeq() (uint64, error) {
	var seq uint64
	err := j.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketMessages)).Sequence() + 1
		return nil
	})
	return seq, err
}

// Record returns the record with the given sequence number.
func (j *Journal) Record(seq uint64) (Record, error) {
	var rec Record
	err := j.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketMessages)).Get(marshalSeq(seq))
		if v == nil {
			return ErrNoRecord
		}
		return decodeRecord(v, &rec)
	})
	return rec, err
}

// Iterate calls fn for every record with from <= Seq < upto, in order.
// An upto of 0 means no upper bound. Iteration stops at the first error.
func (j *Journal) Iterate(from, upto uint64, fn func(Record) error) error {
	return j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketMessages)).Cursor()
		for k, v := c.Seek(marshalSeq(from)); k != nil; k, v = c.Next() {
			if upto != 0 && unmarshalSeq(k) >= upto {
				break
			}
			var rec Record
			if err := decodeRecord(v, &rec); err != nil {
				return err
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Records returns the records in [from, upto).
func (j *Journal) Records(from, upto uint64) ([]Record, error) {
	var recs []Record
	err := j.Iterate(from, upto, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	return recs, err
}

// Decode decodes a record's payload into a message.
func Decode[Msg any](rec Record) (Msg, error) {
	var msg Msg
	if err := msgpack.Unmarshal(rec.Payload, &msg); err != nil {
		return msg, errors.New("E021").WithDetailf("decoding record %d (%s)", rec.Seq, rec.Type).Wrap(err)
	}
	return msg, nil
}

// Replay decodes every record from seq from onwards and passes it to
// dispatch. It returns the number of messages dispatched.
func Replay[Msg any](j *Journal, from uint64, dispatch func(Msg) error) (int, error) {
	n := 0
	err := j.Iterate(from, 0, func(rec Record) error {
		msg, err := Decode[Msg](rec)
		if err != nil {
			return err
		}
		if err := dispatch(msg); err != nil {
			return errors.New("E022").WithDetailf("record %d", rec.Seq).Wrap(err)
		}
		n++
		return nil
	})
	return n, err
}

func decodeRecord(v []byte, rec *Record) error {
	if err := msgpack.Unmarshal(v, rec); err != nil {
		return errors.New("E021").Wrap(err)
	}
	return nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
