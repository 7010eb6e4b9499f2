package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger(false)
	test.That(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel), test.ShouldBeFalse)
	test.That(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel), test.ShouldBeTrue)

	logger = NewLogger(true)
	test.That(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel), test.ShouldBeTrue)
}

func TestNewTestLogger(t *testing.T) {
	logger, logs := NewTestLogger(t)
	logger.Debugw("[*] frame", "index", 3)
	logger.Infof("[>] Ready: %d/%d", 1, 2)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.FilterMessage("[>] Ready: 1/2").Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].ContextMap()["index"], test.ShouldEqual, int64(3))
}
