package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the domain part of email can
// receive mail: an MX record, or failing that any A/AAAA record.
// Malformed addresses and unresolvable domains are both invalid.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
