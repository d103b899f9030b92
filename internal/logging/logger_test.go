package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
}

func TestCombinedWriterWritesToAllAndCollectsErrors(t *testing.T) {
	var first, second bytes.Buffer
	w := NewCombinedWriter(&first, failingWriter{}, &second)

	n, err := w.Write([]byte("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", first.String())
	assert.Equal(t, "hello", second.String())
}

func TestSentryHookLevels(t *testing.T) {
	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())
	// no client bound: firing must be a no-op
	assert.NoError(t, hook.Fire(logrus.NewEntry(logrus.New()).WithField("k", "v")))
}
