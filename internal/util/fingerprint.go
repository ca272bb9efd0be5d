package util

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// SequenceKey returns the exact little-endian encoding of a sequence of box
// heights. Equal keys mean equal sequences.
func SequenceKey(seq []int) string {
	buf := make([]byte, 8*len(seq))
	for i, v := range seq {
		binary.LittleEndian.PutUint64(buf[8*i:], uint64(int64(v)))
	}
	return string(buf)
}

// CalculateFileFingerprint calculates CRC32 fingerprint of the last 2KB of a file
func CalculateFileFingerprint(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	size := stat.Size()
	readSize := int64(2048)
	if size < readSize {
		readSize = size
	}

	_, err = file.Seek(-readSize, io.SeekEnd)
	if err != nil {
		return "", err
	}

	data := make([]byte, readSize)
	if _, err := io.ReadFull(file, data); err != nil {
		return "", err
	}

	crc := crc32.ChecksumIEEE(data)
	return fmt.Sprintf("%08x", crc), nil
}
