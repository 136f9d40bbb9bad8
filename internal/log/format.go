// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the format of the log lines.
type Format uint8

const (
	// FormatConsole writes a time prefix and a coloured level.
	FormatConsole Format = iota
	// FormatPlain writes the same fields as FormatConsole without colours.
	FormatPlain
)

// ErrFormatNotRecognised is returned by ParseFormat for unknown format names.
var ErrFormatNotRecognised = errors.New("format is not recognised")

// ParseFormat parses "console" or "plain" into a Format.
func ParseFormat(s string) (format Format, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console":
		return FormatConsole, nil
	case "plain":
		return FormatPlain, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrFormatNotRecognised, s)
}
