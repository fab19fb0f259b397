// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/Armaghan195/ToyVerse/internal/logging"
)

// TrustedRealIP replaces RemoteAddr with the client address from
// X-Forwarded-For or X-Real-IP, but only when the direct peer is one of
// trusted. Entries are IP addresses or CIDR prefixes. Requests from any
// other peer keep their socket address, so clients cannot choose the IP
// used for anonymous sessions and rate limiting.
func TrustedRealIP(trusted []string) func(http.Handler) http.Handler {
	prefixes := parseTrustedProxies(trusted)

	return func(next http.Handler) http.Handler {
		if len(prefixes) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			peer, ok := remoteAddr(r.RemoteAddr)
			if !ok || !containsAddr(prefixes, peer) {
				if r.Header.Get("X-Forwarded-For") != "" || r.Header.Get("X-Real-IP") != "" {
					logging.Debug().Str("peer", r.RemoteAddr).Msg("Ignoring forwarded address from untrusted peer")
				}
				next.ServeHTTP(w, r)
				return
			}

			if ip := forwardedIP(r); ip != "" {
				r.RemoteAddr = ip
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseTrustedProxies turns addresses and CIDRs into prefixes, skipping
// entries that parse as neither.
func parseTrustedProxies(trusted []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(trusted))
	for _, entry := range trusted {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if p, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			a = a.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return prefixes
}

func remoteAddr(addr string) (netip.Addr, bool) {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

func containsAddr(prefixes []netip.Prefix, a netip.Addr) bool {
	for _, p := range prefixes {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// forwardedIP returns the first valid address from X-Forwarded-For, then
// X-Real-IP, or "" when neither carries one.
func forwardedIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if a, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return a.Unmap().String()
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if a, err := netip.ParseAddr(xri); err == nil {
			return a.Unmap().String()
		}
	}
	return ""
}
