package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Loggers groups one zap logger per concern, each writing to its own file.
type Loggers struct {
	Error    *zap.Logger
	Audit    *zap.Logger
	Request  *zap.Logger
	Security *zap.Logger
	System   *zap.Logger
}

func newLogger(filePath string, level zapcore.Level) (*zap.Logger, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	ws := zapcore.AddSync(file)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		level,
	)
	return zap.New(core), nil
}

type logFile struct {
	name  string
	level zapcore.Level
	dst   **zap.Logger
}

// New opens (or creates) the log files under dir.
func New(dir string) (*Loggers, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	l := &Loggers{}
	files := []logFile{
		{"errors.log", zapcore.ErrorLevel, &l.Error},
		{"audit.log", zapcore.InfoLevel, &l.Audit},
		{"request.log", zapcore.InfoLevel, &l.Request},
		{"security.log", zapcore.WarnLevel, &l.Security},
		{"system.log", zapcore.InfoLevel, &l.System},
	}

	for _, s := range files {
		lg, err := newLogger(filepath.Join(dir, s.name), s.level)
		if err != nil {
			return nil, fmt.Errorf("cannot create %s logger: %w", s.name, err)
		}
		*s.dst = lg
	}
	return l, nil
}

// NewNop returns loggers that discard everything.
func NewNop() *Loggers {
	return &Loggers{
		Error:    zap.NewNop(),
		Audit:    zap.NewNop(),
		Request:  zap.NewNop(),
		Security: zap.NewNop(),
		System:   zap.NewNop(),
	}
}

func (l *Loggers) Sync() {
	_ = l.Error.Sync()
	_ = l.Audit.Sync()
	_ = l.Request.Sync()
	_ = l.Security.Sync()
	_ = l.System.Sync()
}
