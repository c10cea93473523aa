package filtercache

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/cosmetic-filter/internal/cosmetic"
	"github.com/bnema/cosmetic-filter/internal/hashutil"
)

// Binary cache format: a fixed header followed by one variable-length
// record per rule. The magic/version/header shape follows the teacher's
// compiled-cache format exactly; unlike the teacher's mmap+unsafe-pointer
// loader (built for a browser's hot-path filter matching) this is a plain
// sequential encoding/binary reader, appropriate for this engine's CLI/
// batch-compile scale rather than a persistently mapped process cache.
const (
	cacheMagic   uint64 = 0x434f534d4554_01
	cacheVersion uint32 = 1
	cacheFilePerm        = 0600
)

type cacheHeader struct {
	Magic     uint64
	Version   uint32
	RuleCount uint32
	Created   int64
	Checksum  uint32
}

// Save atomically writes rules to path in the compiled binary format,
// writing to a temp file in the same directory and renaming over the
// destination so a reader never observes a partial write — the same
// atomic-write pattern the teacher's filter store uses.
func Save(path string, rules []*cosmetic.CosmeticFilter, createdUnixNano int64) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".filtercache-*.tmp")
	if err != nil {
		return fmt.Errorf("filtercache: failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	body, checksum := encodeRules(rules)

	header := cacheHeader{
		Magic:     cacheMagic,
		Version:   cacheVersion,
		RuleCount: uint32(len(rules)),
		Created:   createdUnixNano,
		Checksum:  checksum,
	}

	w := bufio.NewWriter(tmp)
	if err = binary.Write(w, binary.LittleEndian, header); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filtercache: failed to write header: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filtercache: failed to write rule data: %w", err)
	}
	if err = w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filtercache: failed to flush rule data: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("filtercache: failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, cacheFilePerm); err != nil {
		return fmt.Errorf("filtercache: failed to set cache file permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("filtercache: failed to install cache file: %w", err)
	}
	return nil
}

// Load reads a compiled binary cache file back into a rule slice, which the
// caller can hand to NewFromRules to rebuild the bucketed index.
func Load(path string) ([]*cosmetic.CosmeticFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filtercache: failed to open cache file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var header cacheHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("filtercache: failed to read header: %w", err)
	}
	if header.Magic != cacheMagic {
		return nil, fmt.Errorf("filtercache: bad magic %x", header.Magic)
	}
	if header.Version != cacheVersion {
		return nil, fmt.Errorf("filtercache: unsupported cache version %d", header.Version)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("filtercache: failed to read rule data: %w", err)
	}
	if crc32.ChecksumIEEE(body) != header.Checksum {
		return nil, fmt.Errorf("filtercache: checksum mismatch, cache file is corrupt")
	}

	return decodeRules(body, int(header.RuleCount))
}

func encodeRules(rules []*cosmetic.CosmeticFilter) ([]byte, uint32) {
	var buf []byte
	for _, rule := range rules {
		buf = appendRecord(buf, rule)
	}
	return buf, crc32.ChecksumIEEE(buf)
}

func appendRecord(buf []byte, rule *cosmetic.CosmeticFilter) []byte {
	buf = appendUint8(buf, uint8(rule.Mask))
	buf = appendBool(buf, rule.HasStyle)
	buf = appendString(buf, rule.Selector)
	buf = appendString(buf, rule.Style)
	buf = appendHashes(buf, rule.Entities)
	buf = appendHashes(buf, rule.Hostnames)
	buf = appendHashes(buf, rule.NotEntities)
	buf = appendHashes(buf, rule.NotHostnames)
	return buf
}

func decodeRules(buf []byte, count int) ([]*cosmetic.CosmeticFilter, error) {
	rules := make([]*cosmetic.CosmeticFilter, 0, count)
	offset := 0
	for i := 0; i < count; i++ {
		rule := &cosmetic.CosmeticFilter{}
		var err error
		var maskByte, hasStyleByte uint8

		maskByte, offset, err = readUint8(buf, offset)
		if err != nil {
			return nil, err
		}
		hasStyleByte, offset, err = readUint8(buf, offset)
		if err != nil {
			return nil, err
		}
		rule.Mask = cosmetic.Mask(maskByte)
		rule.HasStyle = hasStyleByte != 0

		rule.Selector, offset, err = readString(buf, offset)
		if err != nil {
			return nil, err
		}
		rule.Style, offset, err = readString(buf, offset)
		if err != nil {
			return nil, err
		}
		rule.Entities, offset, err = readHashes(buf, offset)
		if err != nil {
			return nil, err
		}
		rule.Hostnames, offset, err = readHashes(buf, offset)
		if err != nil {
			return nil, err
		}
		rule.NotEntities, offset, err = readHashes(buf, offset)
		if err != nil {
			return nil, err
		}
		rule.NotHostnames, offset, err = readHashes(buf, offset)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func appendUint8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

func appendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func appendString(buf []byte, s string) []byte {
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(s)))
	buf = append(buf, lenBytes[:]...)
	return append(buf, s...)
}

func appendHashes(buf []byte, hashes []hashutil.Hash) []byte {
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], uint16(len(hashes)))
	buf = append(buf, lenBytes[:]...)
	for _, h := range hashes {
		var hb [8]byte
		binary.LittleEndian.PutUint64(hb[:], uint64(h))
		buf = append(buf, hb[:]...)
	}
	return buf
}

func readUint8(buf []byte, offset int) (uint8, int, error) {
	if offset+1 > len(buf) {
		return 0, offset, fmt.Errorf("filtercache: truncated record at offset %d", offset)
	}
	return buf[offset], offset + 1, nil
}

func readString(buf []byte, offset int) (string, int, error) {
	if offset+2 > len(buf) {
		return "", offset, fmt.Errorf("filtercache: truncated string length at offset %d", offset)
	}
	n := int(binary.LittleEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	if offset+n > len(buf) {
		return "", offset, fmt.Errorf("filtercache: truncated string at offset %d", offset)
	}
	s := string(buf[offset : offset+n])
	return s, offset + n, nil
}

func readHashes(buf []byte, offset int) ([]hashutil.Hash, int, error) {
	if offset+2 > len(buf) {
		return nil, offset, fmt.Errorf("filtercache: truncated hash count at offset %d", offset)
	}
	n := int(binary.LittleEndian.Uint16(buf[offset : offset+2]))
	offset += 2
	if n == 0 {
		return nil, offset, nil
	}
	if offset+n*8 > len(buf) {
		return nil, offset, fmt.Errorf("filtercache: truncated hash list at offset %d", offset)
	}
	hashes := make([]hashutil.Hash, n)
	for i := 0; i < n; i++ {
		hashes[i] = hashutil.Hash(binary.LittleEndian.Uint64(buf[offset : offset+8]))
		offset += 8
	}
	return hashes, offset, nil
}
