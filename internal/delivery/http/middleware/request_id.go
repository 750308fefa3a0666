package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"holidayplanner/internal/requestctx"
)

// HeaderXRequestID carries the request ID in and out.
const HeaderXRequestID = "X-Request-Id"

// maxRequestIDLen bounds client supplied IDs before they reach logs and message headers.
const maxRequestIDLen = 128

// RequestID reuses the caller's X-Request-Id or generates one, echoes it on the response
// and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" || len(reqID) > maxRequestIDLen {
			reqID = uuid.NewString()
		}
		w.Header().Set(HeaderXRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), reqID)))
	})
}
