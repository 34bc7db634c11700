package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/conduit-lang/hypermedia/pkg/uber"
)

// Recovery turns a panicking handler into a 500 response carrying an UBER
// error message. The panic is logged with its stack trace.
func Recovery(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				logger.Error("panic recovered",
					zap.Error(err),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Stack("stack"),
				)

				writePanicResponse(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writePanicResponse(w http.ResponseWriter) {
	msg := uber.ErrorMessage(
		uber.ErrorField{Name: "status", Value: http.StatusInternalServerError},
		uber.ErrorField{Name: "code", Value: "internal_error"},
		uber.ErrorField{Name: "message", Value: "An unexpected error occurred"},
	)
	body, err := msg.MarshalIndent(false)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
		return
	}

	w.Header().Set("Content-Type", uber.MediaType)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(body)
}
