package panzoom

import (
	"errors"
	"fmt"
)

// ErrNoSpace reports that a page has no shelf that can hold an image.
// The asset manager handles it by trying the next page or allocating one.
var ErrNoSpace = errors.New("panzoom: no space on page")

// ErrDecode marks an asset whose bytes were found but could not be decoded.
// Missing sources wrap fs.ErrNotExist instead.
var ErrDecode = errors.New("panzoom: decode failed")

// LoadError is returned by LoadAssets when an asset cannot be read or
// decoded. The batch stops at the first LoadError.
type LoadError struct {
	ID  string
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("panzoom: load asset %q (%s): %v", e.ID, e.URL, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
