package auth

import (
	"net/url"
	"strings"
)

// SupervisorHost is the hostname the Home Assistant supervisor proxy answers on.
const SupervisorHost = "supervisor"

// BearerToken formats the Authorization header value for the supervisor API.
func BearerToken(token string) string {
	return "Bearer " + strings.TrimSpace(token)
}

// NeedsSupervisorAuth reports whether rawURL points at the supervisor. The
// supervisor credential is only ever sent there, never to a standalone
// go2rtc instance on the local network.
func NeedsSupervisorAuth(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), SupervisorHost)
}
