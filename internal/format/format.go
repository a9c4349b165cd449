// Package format implements the "format" keyword's assertion bodies
// (spec.md §6 "Format assertions"). Each checker is a pure predicate over
// a string instance; unknown format names are accepted as valid per
// spec.md §6. Grounded on the domain-stack wiring in SPEC_FULL.md §3:
// github.com/google/uuid for the uuid checker (cross-checked in tests by
// github.com/gofrs/uuid's independent parser) and
// github.com/dlclark/regexp2 for the regex checker's ECMA-262 semantics;
// everything else uses the standard library the way jacoelho-xsd's own
// builtin facets lean on net/url, time, and regexp for their checks.
package format

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

// Checker validates a string instance against one named format.
type Checker func(s string) bool

var checkers = map[string]Checker{
	"date":                  isDate,
	"time":                  isTime,
	"date-time":             isDateTime,
	"duration":              isDuration,
	"email":                 isEmail,
	"hostname":              isHostname,
	"ipv4":                  isIPv4,
	"ipv6":                  isIPv6,
	"uri":                   isURI,
	"uri-reference":         isURIReference,
	"uuid":                  isUUID,
	"regex":                 isRegex,
	"json-pointer":          isJSONPointer,
	"relative-json-pointer": isRelativeJSONPointer,
}

// Lookup returns the checker registered for name, or ok=false for an
// unrecognized format (which the caller must then treat as always valid).
func Lookup(name string) (Checker, bool) {
	c, ok := checkers[name]
	return c, ok
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(s string) bool {
	for _, layout := range []string{"15:04:05Z07:00", "15:04:05.999999999Z07:00"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

var durationPattern = regexp.MustCompile(`^P(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:W\d+)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`)

func isDuration(s string) bool {
	if s == "" || s[0] != 'P' {
		return false
	}
	if s == "P" {
		return false
	}
	return durationPattern.MatchString(s)
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func isHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	labels := strings.Split(strings.TrimSuffix(s, "."), ".")
	for _, l := range labels {
		if l == "" || len(l) > 63 {
			return false
		}
		if l[0] == '-' || l[len(l)-1] == '-' {
			return false
		}
		for _, r := range l {
			if !(r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
		}
	}
	return true
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Count(s, ":") == 0
}

func isIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() == nil && strings.Contains(s, ":")
}

func isURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func isURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}

func isUUID(s string) bool {
	if _, err := uuid.Parse(s); err != nil {
		return false
	}
	// RFC 4122 requires the canonical hyphenated form; uuid.Parse also
	// accepts the bare 32-hex-digit and urn: forms, which this format
	// rejects.
	return len(s) == 36 && strings.Count(s, "-") == 4
}

func isRegex(s string) bool {
	_, err := regexp2.Compile(s, regexp2.ECMAScript)
	return err == nil
}

func isJSONPointer(s string) bool {
	if s == "" {
		return true
	}
	if s[0] != '/' {
		return false
	}
	for _, tok := range strings.Split(s[1:], "/") {
		for i := 0; i < len(tok); i++ {
			if tok[i] == '~' {
				if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
					return false
				}
			}
		}
	}
	return true
}

func isRelativeJSONPointer(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	rest := s[i:]
	if rest == "" {
		return true
	}
	if rest == "#" {
		return true
	}
	return isJSONPointer(rest)
}
