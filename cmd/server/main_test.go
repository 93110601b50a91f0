package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/youruser/cardapp/internal/config"
)

func TestNewRendererWarnsWithoutFontDir(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	require.NotNil(t, newRenderer(config.Render{}, zap.New(core)))

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	require.Contains(t, warns[0].Message, "no font directory")

	core, logs = observer.New(zapcore.InfoLevel)
	newRenderer(config.Render{FontDir: t.TempDir()}, zap.New(core))
	require.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}
