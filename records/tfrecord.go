package records

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	headerSize   = 12
	footerSize   = 4
	crcMaskDelta = 0xa282ead8
)

var ErrCorruptRecord = errors.New("corrupt tfrecord")

var crc32c = crc32.MakeTable(crc32.Castagnoli)

func maskedCRC(data []byte) uint32 {
	crc := crc32.Checksum(data, crc32c)
	return ((crc >> 15) | (crc << 17)) + crcMaskDelta
}

// Writer frames records in the TFRecord format:
//
//	uint64 length | uint32 masked_crc32c(length) | data | uint32 masked_crc32c(data)
//
// with all integers little-endian.
type Writer struct {
	w      *bufio.Writer
	header [headerSize]byte
	footer [footerSize]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 1024*1024)}
}

func (writer *Writer) Write(data []byte) error {
	binary.LittleEndian.PutUint64(writer.header[0:8], uint64(len(data)))
	binary.LittleEndian.PutUint32(writer.header[8:12],
		maskedCRC(writer.header[0:8]))
	binary.LittleEndian.PutUint32(writer.footer[:], maskedCRC(data))
	if _, err := writer.w.Write(writer.header[:]); err != nil {
		return err
	}
	if _, err := writer.w.Write(data); err != nil {
		return err
	}
	_, err := writer.w.Write(writer.footer[:])
	return err
}

func (writer *Writer) Flush() error {
	return writer.w.Flush()
}

// Reader reads TFRecord framed records, verifying both checksums.
type Reader struct {
	r      *bufio.Reader
	header [headerSize]byte
	footer [footerSize]byte
	offset int64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1024*1024)}
}

// Next returns the next record's payload, or io.EOF after the last complete
// record. Truncated or mismatched records yield ErrCorruptRecord.
func (reader *Reader) Next() ([]byte, error) {
	if _, err := io.ReadFull(reader.r, reader.header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, reader.corrupt("truncated header: %v", err)
	}
	length := binary.LittleEndian.Uint64(reader.header[0:8])
	if binary.LittleEndian.Uint32(reader.header[8:12]) !=
		maskedCRC(reader.header[0:8]) {
		return nil, reader.corrupt("length checksum mismatch")
	}
	if length > uint64(^uint32(0)) {
		return nil, reader.corrupt("record length %d too large", length)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(reader.r, data); err != nil {
		return nil, reader.corrupt("truncated data: %v", err)
	}
	if _, err := io.ReadFull(reader.r, reader.footer[:]); err != nil {
		return nil, reader.corrupt("truncated footer: %v", err)
	}
	if binary.LittleEndian.Uint32(reader.footer[:]) != maskedCRC(data) {
		return nil, reader.corrupt("data checksum mismatch")
	}
	reader.offset += int64(headerSize) + int64(length) + int64(footerSize)
	return data, nil
}

func (reader *Reader) corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d: %s", ErrCorruptRecord,
		reader.offset, fmt.Sprintf(format, args...))
}
