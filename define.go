package scpi

import (
	"github.com/sirupsen/logrus"
)

// _lg is the package-level logger used for dispatcher tracing and device
// lifecycle events. Override it with SetLogger before serving any messages.
var _lg = logrus.New()

// SetLogger installs lg as the package-wide logger.
func SetLogger(lg *logrus.Logger) {
	_lg = lg
}

// asciiEqualFold compares two bytes case-insensitively without allocating
// through strings.ToUpper.
func asciiEqualFold(a, b byte) bool {
	if a == b {
		return true
	}
	if a >= 'a' && a <= 'z' {
		a -= 'a' - 'A'
	}
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return a == b
}
