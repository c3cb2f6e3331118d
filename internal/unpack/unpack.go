// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package unpack transparently decompresses topology input streams.
package unpack

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Magic prefixes of the supported compression containers.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

const sniffLen = 6

// Wrap sniffs the stream's leading bytes and, when it finds a known
// compression container, returns a reader that decompresses it. Plain
// streams pass through untouched.
func Wrap(rdr io.Reader) (io.Reader, error) {
	br := bufio.NewReader(rdr)

	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to sniff input: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return gzip.NewReader(br)

	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}

		return zr.IOReadCloser(), nil

	case bytes.HasPrefix(head, lz4Magic):
		return lz4.NewReader(br), nil

	case bytes.HasPrefix(head, xzMagic):
		return xz.NewReader(br)

	case isZlib(head):
		return zlib.NewReader(br)

	default:
		return br, nil
	}
}

// isZlib matches the two-byte zlib stream header: 0x78 followed by one of
// the flag bytes valid for the default 32 KiB window.
func isZlib(head []byte) bool {
	if len(head) < 2 || head[0] != 0x78 {
		return false
	}

	switch head[1] {
	case 0x01, 0x5e, 0x9c, 0xda:
		return true
	}

	return false
}
