package materialize

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Setting Accept-Encoding by hand turns off the transport's transparent gzip
// handling, so every advertised encoding is decoded here.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return resp.Body, nil
	case "gzip", "x-gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return zlib.NewReader(resp.Body)
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "zstd":
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	}
	return nil, fmt.Errorf("unsupported content encoding %q", encoding)
}

// contentLength is the decoded size when it is known.
func contentLength(resp *http.Response) int64 {
	if enc := resp.Header.Get("Content-Encoding"); enc != "" && !strings.EqualFold(enc, "identity") {
		return 0
	}
	return max(resp.ContentLength, 0)
}

func readErrorBody(resp *http.Response) string {
	body, err := decodeBody(resp)
	if err != nil {
		body = resp.Body
	}
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBodyLen))
	return strings.TrimSpace(string(raw))
}
