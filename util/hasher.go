package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// ChunkSize is the number of bytes read from a file per digest update.
const ChunkSize = 4096

// GetFileHash returns the hex SHA-256 of the file at path. Symlinks are
// followed. The file is closed before GetFileHash returns, so a caller hashing
// a tree holds at most one handle at a time.
func GetFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	return GetHashChunked(r, ChunkSize)
}

// GetHashChunked calculates the SHA-256 hash of r, reading at most size bytes
// per update. The result does not depend on size.
func GetHashChunked(r io.Reader, size int) (string, error) {
	if size <= 0 {
		return "", ErrInvalidChunkSize
	}
	h := sha256.New()
	buf := make([]byte, size)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
