// Package clientip resolves the address of the client behind an HTTP request.
package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers are consulted in this order before falling back to RemoteAddr.
var Headers = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// FromRequest returns the normalized client IP, or "" when nothing valid is
// found. X-Forwarded-For yields its first valid entry.
func FromRequest(r *http.Request) string {
	for _, h := range Headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil || addr.Zone() != "" {
		return ""
	}
	return addr.Unmap().String()
}
