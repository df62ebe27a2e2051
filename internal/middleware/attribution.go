package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/Complexlity/paywithglide/internal/frame"
	"github.com/Complexlity/paywithglide/internal/payment"
)

type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// DisableAttribution rewrites successful JSON transaction responses so that the
// "attribution" flag is false. Other responses pass through untouched.
func DisableAttribution(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := &bufferedResponse{header: make(http.Header)}
		next.ServeHTTP(buf, r)

		if buf.status == 0 {
			buf.status = http.StatusOK
		}

		body := buf.body.Bytes()
		isJSON := strings.HasPrefix(buf.header.Get("Content-Type"), "application/json")
		if buf.status == http.StatusOK && isJSON {
			rewritten, err := payment.DisableAttribution(body)
			if err != nil {
				frame.WriteError(w, http.StatusInternalServerError, "Failed to prepare transaction.")
				return
			}
			body = rewritten
		}

		for k, vs := range buf.header {
			w.Header()[k] = vs
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(buf.status)
		_, _ = w.Write(body)
	})
}
