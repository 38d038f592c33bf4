package graph

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns a 64-bit highwayhash digest of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns Hash of data as a fixed width hex string
func Fingerprint(data []byte) (string, error) {
	sum, err := Hash(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}
