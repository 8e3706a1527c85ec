package clientenv

import (
	"net"
	"net/http"
	"strings"
)

// Request is an Environment backed by an incoming HTTP request. Signals are
// derived from standard headers and client hints where the browser supplies
// them; anything else reads as empty.
type Request struct {
	r *http.Request
}

// NewRequest wraps r in a request-backed Environment.
func NewRequest(r *http.Request) Request {
	return Request{r: r}
}

func (e Request) UserAgent() string {
	return e.r.UserAgent()
}

// Language returns the first tag of the Accept-Language header, stripped of
// any quality weight.
func (e Request) Language() string {
	accept := e.r.Header.Get("Accept-Language")
	if accept == "" {
		return ""
	}
	first, _, _ := strings.Cut(accept, ",")
	tag, _, _ := strings.Cut(first, ";")
	return strings.TrimSpace(tag)
}

// Timezone reads the Sec-CH-Prefers-Timezone client hint. Most browsers do
// not send it; callers get "" and fall back accordingly.
func (e Request) Timezone() string {
	return strings.Trim(e.r.Header.Get("Sec-CH-Prefers-Timezone"), `"`)
}

// Platform prefers the Sec-CH-UA-Platform client hint and falls back to
// keyword matching on the user agent string.
func (e Request) Platform() string {
	if hint := strings.Trim(e.r.Header.Get("Sec-CH-UA-Platform"), `"`); hint != "" {
		return hint
	}
	return platformFromUserAgent(e.r.UserAgent())
}

func (e Request) ScreenResolution() string {
	w := e.r.Header.Get("Sec-CH-Viewport-Width")
	h := e.r.Header.Get("Sec-CH-Viewport-Height")
	if w == "" || h == "" {
		return ""
	}
	return w + "x" + h
}

// ClientIP resolves the visitor's IP address. Proxy headers are checked in
// priority order before falling back to the connection's remote address.
func (e Request) ClientIP() string {
	if ip := parseIP(e.r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	// X-Forwarded-For can carry multiple hops; the first valid entry is the client
	if forwarded := e.r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for hop := range strings.SplitSeq(forwarded, ",") {
			if ip := parseIP(hop); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(e.r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(e.r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare IP
		return parseIP(e.r.RemoteAddr)
	}
	return parseIP(host)
}

func (e Request) Host() string {
	return e.r.Host
}

func (e Request) Path() string {
	return e.r.URL.Path
}

func (e Request) Referrer() string {
	return e.r.Referer()
}

// parseIP validates and normalizes an IP address string, returning "" when
// invalid.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
