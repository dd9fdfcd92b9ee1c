package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	require.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("nonsense"))
}

func TestNewTagsService(t *testing.T) {
	entry := New("debug")
	require.Equal(t, "pharmanear", entry.Data["service"])
	require.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())
}
