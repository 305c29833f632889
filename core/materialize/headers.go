package materialize

import "net/http"

// Origins reject requests that do not look like they come from a browser.
const (
	downloadUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"
	downloadAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	downloadAcceptEncoding = "gzip, deflate, br, zstd"
)

func setDownloadHeaders(h http.Header) {
	h.Set("User-Agent", downloadUserAgent)
	h.Set("Accept", downloadAccept)
	h.Set("Accept-Encoding", downloadAcceptEncoding)
}
