// Package fileuri converts between filesystem paths and file:// resource identifiers.
package fileuri

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

const scheme = "file"

var (
	// ErrUnsupportedScheme is returned when a root identifier is not a file:// URI.
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	// ErrNotAbsolute is returned when a root identifier does not name an absolute path.
	ErrNotAbsolute = errors.New("path is not absolute")
)

// FromPath returns the file:// URI for an absolute path.
// The path is cleaned, so /foo/bar, /foo/bar/ and /foo/./bar share one URI.
func FromPath(absolutePath string) string {
	p := filepath.ToSlash(filepath.Clean(absolutePath))
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths become /C:/...
		p = "/" + p
	}
	u := url.URL{Scheme: scheme, Path: p}
	return u.String()
}

// ToPath resolves a root identifier to a native absolute path. Both file:// URIs and
// plain absolute paths are accepted.
func ToPath(rootURI string) (string, error) {
	if !strings.Contains(rootURI, "://") {
		if !filepath.IsAbs(rootURI) {
			return "", fmt.Errorf("%q: %w", rootURI, ErrNotAbsolute)
		}
		return filepath.Clean(rootURI), nil
	}
	u, err := url.Parse(rootURI)
	if err != nil {
		return "", fmt.Errorf("parse root uri %q: %w", rootURI, err)
	}
	if !strings.EqualFold(u.Scheme, scheme) {
		return "", fmt.Errorf("%q: %w", rootURI, ErrUnsupportedScheme)
	}
	p := u.Path
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		return "", fmt.Errorf("%q: %w", rootURI, ErrNotAbsolute)
	}
	return filepath.Clean(p), nil
}

// Resolve joins a path relative to rootPath and returns its URI.
func Resolve(rootPath, relativePath string) string {
	return FromPath(filepath.Join(rootPath, filepath.FromSlash(relativePath)))
}
