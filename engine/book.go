package engine

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/bitmg"
)

// ErrBadBook is the cause of every book decoding failure.
var ErrBadBook = errors.New("bad opening book")

// Book file layout, inside a zstd stream: the magic, a little-endian uint32
// record count, then records of key (uint64), move (uint32), weight (uint16),
// sorted by key.
var bookMagic = [4]byte{'G', 'B', 'K', '1'}

const bookRecordSize = 8 + 4 + 2

// BookMove is one stored suggestion for a position.
type BookMove struct {
	Move   bitmg.Move
	Weight uint16
}

// Book maps Zobrist keys to the moves stored for them. Keys are the values of
// bitmg.DefaultKeys, so a book is only valid for the seed it was built with.
type Book struct {
	entries map[bitmg.ZKey][]BookMove
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{entries: make(map[bitmg.ZKey][]BookMove)}
}

// Add records m for key, summing the weight if m is already there.
func (bk *Book) Add(key bitmg.ZKey, m bitmg.Move, weight uint16) {
	moves := bk.entries[key]
	for i := range moves {
		if moves[i].Move == m {
			moves[i].Weight += weight
			return
		}
	}
	bk.entries[key] = append(moves, BookMove{Move: m, Weight: weight})
}

// Lookup returns a copy of the moves stored for key.
func (bk *Book) Lookup(key bitmg.ZKey) []BookMove {
	return slices.Clone(bk.entries[key])
}

// Len returns the number of positions in the book.
func (bk *Book) Len() int { return len(bk.entries) }

// Keys returns every position key in ascending order.
func (bk *Book) Keys() []bitmg.ZKey {
	keys := maps.Keys(bk.entries)
	slices.Sort(keys)
	return keys
}

// WriteTo encodes the book as a zstd stream and returns the compressed size.
func (bk *Book) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc, err := zstd.NewWriter(cw, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, errors.Wrap(err, "zstd writer")
	}
	bw := bufio.NewWriter(enc)

	var count uint32
	for _, moves := range bk.entries {
		count += uint32(len(moves))
	}
	var hdr [8]byte
	copy(hdr[:4], bookMagic[:])
	binary.LittleEndian.PutUint32(hdr[4:], count)
	if _, err := bw.Write(hdr[:]); err != nil {
		enc.Close()
		return cw.n, errors.Wrap(err, "book header")
	}

	var rec [bookRecordSize]byte
	for _, key := range bk.Keys() {
		for _, bm := range bk.entries[key] {
			binary.LittleEndian.PutUint64(rec[0:], uint64(key))
			binary.LittleEndian.PutUint32(rec[8:], uint32(bm.Move))
			binary.LittleEndian.PutUint16(rec[12:], bm.Weight)
			if _, err := bw.Write(rec[:]); err != nil {
				enc.Close()
				return cw.n, errors.Wrapf(err, "book record %016x", uint64(key))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return cw.n, errors.Wrap(err, "book flush")
	}
	if err := enc.Close(); err != nil {
		return cw.n, errors.Wrap(err, "zstd close")
	}
	return cw.n, nil
}

// ReadBook decodes a book written by WriteTo.
func ReadBook(r io.Reader) (*Book, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "zstd reader")
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var hdr [8]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, errors.Wrapf(ErrBadBook, "header: %v", err)
	}
	if [4]byte(hdr[:4]) != bookMagic {
		return nil, errors.Wrapf(ErrBadBook, "magic %q", hdr[:4])
	}
	count := binary.LittleEndian.Uint32(hdr[4:])

	bk := NewBook()
	var rec [bookRecordSize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, errors.Wrapf(ErrBadBook, "record %d of %d: %v", i, count, err)
		}
		key := bitmg.ZKey(binary.LittleEndian.Uint64(rec[0:]))
		m := bitmg.Move(binary.LittleEndian.Uint32(rec[8:]))
		if !m.From().Valid() || m.From() == m.To() {
			return nil, errors.Wrapf(ErrBadBook, "record %d: bad move %08x", i, uint32(m))
		}
		bk.Add(key, m, binary.LittleEndian.Uint16(rec[12:]))
	}
	return bk, nil
}

// LoadBook reads a book file.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open book")
	}
	defer f.Close()
	bk, err := ReadBook(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return bk, nil
}

// SaveBook writes the book to path.
func (bk *Book) SaveBook(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create book")
	}
	if _, err := bk.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrap(f.Close(), "close book")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
