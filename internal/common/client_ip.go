package common

import (
	"net"
	"net/http"
)

// ClientIP returns the host part of r.RemoteAddr. Proxy headers are honoured only when the
// router rewrites RemoteAddr from them (TRUST_PROXY_HEADERS).
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
