package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// Recovery converts handler panics into a 500 error envelope instead of
// tearing down the connection. The envelope is written here rather than
// through the errors package to avoid a circular import.
func Recovery(logger *zap.Logger, metrics *HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					metrics.recordPanic()

					if logger != nil {
						logger.Error("handler panic recovered",
							zap.Any("panic", rec),
							zap.String("path", r.URL.Path),
							zap.String("requestID", GetRequestID(r.Context())),
							zap.ByteString("stack", debug.Stack()),
						)
					}

					writePanicResponse(w, r)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type panicResponse struct {
	Error panicDetail `json:"error"`
}

type panicDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writePanicResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(panicResponse{
		Error: panicDetail{
			Code:      "INTERNAL_ERROR",
			Message:   "internal server error",
			RequestID: GetRequestID(r.Context()),
		},
	})
}
