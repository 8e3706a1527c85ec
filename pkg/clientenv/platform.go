package clientenv

import "strings"

// Platform families reported by platformFromUserAgent. Values match the
// Sec-CH-UA-Platform vocabulary so both detection paths agree.
const (
	PlatformWindows  = "Windows"
	PlatformMacOS    = "macOS"
	PlatformIOS      = "iOS"
	PlatformAndroid  = "Android"
	PlatformChromeOS = "Chrome OS"
	PlatformLinux    = "Linux"
)

// platformFromUserAgent identifies the OS family by keyword matching.
// Order reflects typical web traffic: Windows first, then mobile OSes.
// iOS is checked before macOS because iPad user agents may contain both
// "iPad" and "Mac OS X".
func platformFromUserAgent(ua string) string {
	lower := strings.ToLower(ua)
	switch {
	case lower == "":
		return ""
	case strings.Contains(lower, "windows"):
		return PlatformWindows
	case strings.Contains(lower, "iphone"),
		strings.Contains(lower, "ipad"),
		strings.Contains(lower, "ipod"):
		return PlatformIOS
	case strings.Contains(lower, "macintosh"),
		strings.Contains(lower, "mac os x"):
		return PlatformMacOS
	case strings.Contains(lower, "android"):
		return PlatformAndroid
	case strings.Contains(lower, "cros"),
		strings.Contains(lower, "chrome os"):
		return PlatformChromeOS
	case strings.Contains(lower, "linux"),
		strings.Contains(lower, "x11"):
		return PlatformLinux
	}
	return ""
}
