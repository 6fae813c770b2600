// Package digest computes BLAKE3 content hashes for cached passage files
// and archives.
package digest

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/DailyBread/core/errors"
)

// Sum computes the BLAKE3 hash of data as a lowercase hex string.
func Sum(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumReader hashes everything readable from r.
func SumReader(r io.Reader) (string, error) {
	h := blake3.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.NewIO("hash", "stream", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumFile hashes the file at path.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewIO("open", path, err)
	}
	defer f.Close()

	return SumReader(f)
}
