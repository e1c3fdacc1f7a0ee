// Package assets loads the 3D object placed into the scene. Only binary glTF
// (GLB) containers are accepted; their content is handed to the renderer
// untouched.
package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
)

var glbMagic = []byte("glTF")

const glbHeaderSize = 12

// Asset is a loaded, renderer-ready object model.
type Asset struct {
	URI     string
	Version uint32
	Data    []byte
}

func (a *Asset) String() string {
	return fmt.Sprintf("%s (glTF v%d, %d bytes)", a.URI, a.Version, len(a.Data))
}

// Loader fetches and validates an asset.
type Loader interface {
	Load(ctx context.Context, uri string) (*Asset, error)
}

// Decode validates a GLB header and wraps the payload.
func Decode(uri string, data []byte) (*Asset, error) {
	if len(data) < glbHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	if !bytes.Equal(data[:4], glbMagic) {
		return nil, ErrNotGLB
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	length := binary.LittleEndian.Uint32(data[8:12])
	if int(length) > len(data) {
		return nil, fmt.Errorf("%w: header says %d, have %d", ErrTruncated, length, len(data))
	}
	return &Asset{URI: uri, Version: version, Data: data[:length]}, nil
}

// LoadAsync runs the loader on its own goroutine and reports the result to
// exactly one of the callbacks. The returned channel is closed after the
// callback returns.
func LoadAsync(ctx context.Context, loader Loader, uri string, onReady func(*Asset), onFail func(error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		asset, err := loader.Load(ctx, uri)
		if err != nil {
			if onFail != nil {
				onFail(err)
			}
			return
		}
		if onReady != nil {
			onReady(asset)
		}
	}()
	return done
}
