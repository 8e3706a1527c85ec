package clientenv

// Environment exposes the signals the tracking subsystem reads from the
// visitor's platform. Implementations never fail; missing signals are
// reported as empty strings.
type Environment interface {
	// UserAgent returns the raw user agent string.
	UserAgent() string

	// Language returns the visitor's preferred language tag (e.g. "en-US").
	Language() string

	// Timezone returns the visitor's IANA timezone name, when known.
	Timezone() string

	// Platform returns the operating system family (e.g. "macOS", "Windows").
	Platform() string

	// ScreenResolution returns "<width>x<height>", when known.
	ScreenResolution() string

	// ClientIP returns the visitor's IP address, when known.
	ClientIP() string

	// Host returns the hostname of the page or endpoint being visited.
	Host() string

	// Path returns the path of the page being visited.
	Path() string

	// Referrer returns the referring URL, when known.
	Referrer() string
}

// Inert is the empty environment. Every accessor returns "". It stands in
// wherever no visitor context exists, such as server-side rendering or
// scheduled jobs, keeping the tracker usable but inactive.
type Inert struct{}

func (Inert) UserAgent() string        { return "" }
func (Inert) Language() string         { return "" }
func (Inert) Timezone() string         { return "" }
func (Inert) Platform() string         { return "" }
func (Inert) ScreenResolution() string { return "" }
func (Inert) ClientIP() string         { return "" }
func (Inert) Host() string             { return "" }
func (Inert) Path() string             { return "" }
func (Inert) Referrer() string         { return "" }

// Static is an Environment with fixed values. Zero-value fields read as
// absent signals.
type Static struct {
	Agent        string
	Lang         string
	TZ           string
	OS           string
	Screen       string
	IP           string
	PageHost     string
	PagePath     string
	PageReferrer string
}

func (s Static) UserAgent() string        { return s.Agent }
func (s Static) Language() string         { return s.Lang }
func (s Static) Timezone() string         { return s.TZ }
func (s Static) Platform() string         { return s.OS }
func (s Static) ScreenResolution() string { return s.Screen }
func (s Static) ClientIP() string         { return s.IP }
func (s Static) Host() string             { return s.PageHost }
func (s Static) Path() string             { return s.PagePath }
func (s Static) Referrer() string         { return s.PageReferrer }
