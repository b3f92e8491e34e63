package services

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// DeriveFingerprint produces a stable, non-reversible identifier for the
// client from its network address and user-agent. The first entry of the
// X-Forwarded-For header wins; otherwise the direct peer address is used.
func DeriveFingerprint(forwardedFor, remoteAddr, userAgent string) string {
	ip := clientIP(forwardedFor, remoteAddr)
	sum := sha256.Sum256([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(sum[:])
}

func clientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.SplitN(forwardedFor, ",", 2)[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
