package middleware

import (
	"encoding/binary"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

// ETag is a strong validator: the quoted hex xxhash of content.
func ETag(content []byte) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Sum64(content))

	return `"` + hex.EncodeToString(buf[:]) + `"`
}

// ConditionalGET tags successful GET responses with an ETag and answers
// 304 Not Modified when If-None-Match already names it.
func ConditionalGET() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)

				return
			}

			brw := newBufferedResponseWriter(w)

			next.ServeHTTP(brw, r)

			if brw.statusCode >= http.StatusMultipleChoices {
				_ = brw.flush()

				return
			}

			etag := ETag(brw.body.Bytes())
			w.Header().Set(headerETag, etag)

			if etagMatches(r.Header.Get(headerIfNoneMatch), etag) {
				w.Header().Del("Content-Type")
				w.WriteHeader(http.StatusNotModified)

				return
			}

			_ = brw.flush()
		})
	}
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}

	if ifNoneMatch == "*" {
		return true
	}

	for _, value := range strings.Split(ifNoneMatch, ",") {
		value = strings.TrimPrefix(strings.TrimSpace(value), "W/")
		if value == etag {
			return true
		}
	}

	return false
}
