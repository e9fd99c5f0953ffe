// Package storage archives uploaded quiz documents so a created form can be
// traced back to the exact text it was generated from.
package storage

import "io"

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
