package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"iwannabeavolunteer/portal/internal/common"
	"iwannabeavolunteer/portal/internal/constants"
	"iwannabeavolunteer/portal/internal/logging"
)

// Recoverer turns a panic into 500 {"error": <panic message>}
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logging.Error("Panic recovered",
				"request_id", GetRequestID(r.Context()),
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			common.WriteError(w, http.StatusInternalServerError, panicMessage(rec))
		}()

		next.ServeHTTP(w, r)
	})
}

func panicMessage(rec any) string {
	var msg string
	switch v := rec.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprint(v)
	}
	if msg == "" {
		return constants.MsgInternalServerError
	}
	return msg
}
