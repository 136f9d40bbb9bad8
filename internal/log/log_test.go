// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Logger_log(t *testing.T) {
	t.Parallel()

	newTestLogger := func(level Level, caller callerSettings, context []contextKeyValues) *Logger {
		return &Logger{
			settings: settings{
				level:   levelPtr(level),
				format:  formatPtr(FormatPlain),
				caller:  caller,
				context: context,
			},
			mutex: new(sync.Mutex),
		}
	}

	testCases := map[string]struct {
		logger      *Logger
		level       Level
		s           string
		args        []interface{}
		outputRegex string
	}{
		"log at trace": {
			logger:      newTestLogger(Trace, newCallerSettings(false, false, false), nil),
			level:       Trace,
			s:           "some words",
			outputRegex: timePrefixRegex + "TRACE    some words\n$",
		},
		"do not log at trace": {
			logger:      newTestLogger(Debug, newCallerSettings(false, false, false), nil),
			level:       Trace,
			s:           "some words",
			outputRegex: "^$",
		},
		"log at critical with info set": {
			logger:      newTestLogger(Info, newCallerSettings(false, false, false), nil),
			level:       Critical,
			s:           "some words",
			outputRegex: timePrefixRegex + "CRITICAL some words\n$",
		},
		"format string": {
			logger:      newTestLogger(Trace, newCallerSettings(false, false, false), nil),
			level:       Debug,
			s:           "slot %d",
			args:        []interface{}{1000},
			outputRegex: timePrefixRegex + "DEBUG    slot 1000\n$",
		},
		"show caller": {
			logger:      newTestLogger(Trace, newCallerSettings(true, true, true), nil),
			level:       Trace,
			s:           "some words",
			outputRegex: timePrefixRegex + "TRACE    some words\tlog_test.go:L[0-9]+:func[0-9]+\n$",
		},
		"context": {
			logger: newTestLogger(Trace, newCallerSettings(false, false, false), []contextKeyValues{
				{key: "pkg", values: []string{"sassafras"}},
				{key: "epoch", values: []string{"1", "2"}},
			}),
			level:       Info,
			s:           "some words",
			outputRegex: timePrefixRegex + "INFO     some words\tpkg=sassafras epoch=1,2\n$",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := bytes.NewBuffer(nil)
			testCase.logger.settings.writer = buffer

			logWrapper := func() { // wrap for caller depth of 3
				testCase.logger.log(testCase.level, testCase.s, testCase.args...)
			}

			logWrapper()

			line := buffer.String()

			regex, err := regexp.Compile(testCase.outputRegex)
			require.NoError(t, err)

			assert.True(t, regex.MatchString(line),
				"line %q does not match regex %q", line, regex.String())
		})
	}
}

func Test_Logger_LevelsLog(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)

	logger := New(SetLevel(Trace), SetWriter(buffer), SetFormat(FormatPlain))
	logger.Trace("some trace")
	logger.Debug("some debug")
	logger.Info("some info")
	logger.Warn("some warn")
	logger.Error("some error")
	logger.Critical("some critical")
	logger.Tracef("some %dnd trace", 2)
	logger.Debugf("some %dnd debug", 2)
	logger.Infof("some %dnd info", 2)
	logger.Warnf("some %dnd warn", 2)
	logger.Errorf("some %dnd error", 2)
	logger.Criticalf("some %dnd critical", 2)

	lines := strings.Split(buffer.String(), "\n")

	// Check for trailing newline
	require.NotEmpty(t, lines)
	assert.Equal(t, "", lines[len(lines)-1])
	lines = lines[:len(lines)-1]

	expectedRegexes := []string{
		timePrefixRegex + "TRACE    some trace$",
		timePrefixRegex + "DEBUG    some debug$",
		timePrefixRegex + "INFO     some info$",
		timePrefixRegex + "WARN     some warn$",
		timePrefixRegex + "ERROR    some error$",
		timePrefixRegex + "CRITICAL some critical$",
		timePrefixRegex + "TRACE    some 2nd trace$",
		timePrefixRegex + "DEBUG    some 2nd debug$",
		timePrefixRegex + "INFO     some 2nd info$",
		timePrefixRegex + "WARN     some 2nd warn$",
		timePrefixRegex + "ERROR    some 2nd error$",
		timePrefixRegex + "CRITICAL some 2nd critical$",
	}

	require.Equal(t, len(expectedRegexes), len(lines))

	for i := range lines {
		regex, err := regexp.Compile(expectedRegexes[i])
		require.NoError(t, err)

		assert.True(t, regex.MatchString(lines[i]),
			"line %q does not match regex %q", lines[i], expectedRegexes[i])
	}
}

func Test_Logger_consoleFormat(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	logger := New(SetWriter(buffer))

	logger.Info("coloured")

	assert.Contains(t, buffer.String(), "INFO")
	assert.Contains(t, buffer.String(), " coloured\n")
}
