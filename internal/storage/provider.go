// Package storage reads and writes Markdown files under the journal vault
// directory.
package storage

import "time"

// FileMeta describes one Markdown file in the vault.
type FileMeta struct {
	Path     string // slash-separated, relative to the vault root
	Checksum string
	ModTime  time.Time
}

// Provider lists and reads vault files. Paths are relative to the root.
type Provider interface {
	List(dir string) ([]FileMeta, error)
	Read(path string) ([]byte, error)
	Write(path string, content []byte) error
}
