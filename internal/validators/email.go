package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address has a domain that actually
// resolves, via MX first with a plain host lookup as fallback. Syntax
// beyond "one @ with something after it" is left to the binding layer.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
