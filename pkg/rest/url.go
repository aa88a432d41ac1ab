/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var urlEscaper = strings.NewReplacer(
	"'", "''",
	"%", "%25",
	"#", "%23",
	"?", "%3F",
	"&", "%26",
)

// EscapeObjectName makes an object name safe for use inside a URL segment
func EscapeObjectName(name string) string {
	return urlEscaper.Replace(name)
}

// FormatURL fills the %s/%v placeholders in url with escaped arguments
func FormatURL(url string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			escaped[i] = EscapeObjectName(s)
		} else {
			escaped[i] = arg
		}
	}
	return fmt.Sprintf(url, escaped...)
}

// AddURLParameters appends query parameters to rawURL, skipping empty values.
// Used for the sandbox and changeset parameters which are not part of the
// resource path. Single quotes are doubled before percent-encoding so the
// server reads the value as one literal.
func AddURLParameters(rawURL string, parameters map[string]string) string {
	pairs := make([]string, 0, len(parameters))
	for key, value := range parameters {
		if value == "" {
			continue
		}
		pairs = append(pairs, key+"="+url.QueryEscape(strings.ReplaceAll(value, "'", "''")))
	}
	if len(pairs) == 0 {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + strings.Join(pairs, "&")
}

// IntegerizeVersion turns a dotted version string into a comparable integer
// with the given digit precision
func IntegerizeVersion(version string, precision int) int {
	if len(version) > precision {
		version = version[:precision]
	}
	digits := strings.ReplaceAll(version, ".", "")
	for len(digits) < precision {
		digits += "0"
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return value
}

// VerifyVersion reports whether version satisfies requiredVersion
func VerifyVersion(requiredVersion, version string) bool {
	precision := len(requiredVersion)
	return IntegerizeVersion(version, precision) >= IntegerizeVersion(requiredVersion, precision)
}
