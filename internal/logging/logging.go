package logging

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the diagnostics logger. Output goes to w (stderr in production)
// so it never mixes with the status lines on stdout.
func New(debug bool, w io.Writer) *zap.SugaredLogger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg.EncoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		cfg.Level,
	)
	return zap.New(core).Sugar().With("run_id", uuid.NewString())
}
