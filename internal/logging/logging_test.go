package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		description string
		level       string
		expect      logrus.Level
		expectErr   bool
	}{
		{description: "default", expect: logrus.InfoLevel},
		{description: "debug", level: "debug", expect: logrus.DebugLevel},
		{description: "upper case", level: "WARN", expect: logrus.WarnLevel},
		{description: "invalid", level: "loud", expectErr: true},
	}
	for _, testCase := range testCases {
		logger, err := New(testCase.level, &bytes.Buffer{})
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, logger.GetLevel(), testCase.description)
	}
}

func TestLogger_Output(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger, err := New("debug", buffer)
	require.NoError(t, err)
	logger.WithFields(logrus.Fields{"process": "P1", "time": 3}).Debug("dispatched")
	assert.Contains(t, buffer.String(), "process=P1")
	assert.Contains(t, buffer.String(), "dispatched")

	Discard().Error("dropped")
}
