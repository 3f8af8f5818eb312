// Package protocolver pins the semantic version of the Semi-AVID-PR
// protocol this module implements. There is no wire format to gate, but a
// scheme that tags its coded files and commitments with a version they
// never serialize still benefits from a single, validated constant other
// packages can reference in logs and panics rather than restating "0.3.0"
// by hand.
package protocolver

import "github.com/blang/semver/v4"

const versionString = "0.3.0"

// Version is the parsed, validated protocol version. Parsing happens once
// at init time: a malformed versionString is a programming error in this
// module, not something a caller can recover from.
var Version = semver.MustParse(versionString)

// String returns the canonical "x.y.z" form.
func String() string {
	return Version.String()
}
