package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/core"
)

// Wrapper depth for caller reporting: global func + component method + logWithContext.
const callerSkip = 3

// Logger is the context-aware structured logging interface.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...zap.Field)
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Warn(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
	Fatal(ctx context.Context, msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

// LoggerComponent is the zap-backed logging component.
type LoggerComponent struct {
	*core.BaseComponent
	config    *LoggingConfig
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

func NewLoggerComponent(cfg *LoggingConfig) *LoggerComponent {
	return &LoggerComponent{
		BaseComponent: core.NewBaseComponent(consts.COMPONENT_LOGGING),
		config:        cfg,
	}
}

func (lc *LoggerComponent) Start(ctx context.Context) error {
	if err := lc.BaseComponent.Start(ctx); err != nil {
		return err
	}

	encoder := lc.buildEncoder()
	writeSyncer, err := lc.buildWriteSyncer()
	if err != nil {
		return fmt.Errorf("failed to create write syncer: %w", err)
	}
	level := lc.parseLevel(lc.config.Level)

	lc.zapLogger = zap.New(
		zapcore.NewCore(encoder, writeSyncer, level),
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	lc.sugar = lc.zapLogger.Sugar()

	lc.zapLogger.Info("Zap logger component started",
		zap.String("level", lc.config.Level),
		zap.String("format", lc.config.Format),
		zap.String("output", lc.config.Output),
	)

	SetGlobalLogger(lc)
	return nil
}

func (lc *LoggerComponent) Stop(ctx context.Context) error {
	if lc.zapLogger != nil {
		Info(ctx, "logger component stopping")
		_ = lc.zapLogger.Sync()
	}
	return lc.BaseComponent.Stop(ctx)
}

func (lc *LoggerComponent) HealthCheck() error {
	if err := lc.BaseComponent.HealthCheck(); err != nil {
		return err
	}
	if lc.zapLogger == nil {
		return fmt.Errorf("zap logger is not initialized")
	}
	return nil
}

func (lc *LoggerComponent) buildEncoder() zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if lc.config.Format == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func (lc *LoggerComponent) buildWriteSyncer() (zapcore.WriteSyncer, error) {
	switch strings.ToLower(lc.config.Output) {
	case "stdout", "":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	case "file":
		return lc.buildFileWriteSyncer()
	default:
		// treat unknown keyword as a file path
		return lc.buildCustomFileWriteSyncer(lc.config.Output)
	}
}

func (lc *LoggerComponent) buildFileWriteSyncer() (zapcore.WriteSyncer, error) {
	if lc.config.FileConfig == nil {
		return nil, fmt.Errorf("file config is required when output is 'file'")
	}
	if err := os.MkdirAll(lc.config.FileConfig.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile := filepath.Join(lc.config.FileConfig.Dir, lc.config.FileConfig.Filename+".log")

	if lc.config.RotateConfig != nil && lc.config.RotateConfig.Enabled {
		lumber := &lumberjack.Logger{
			Filename:  logFile,
			MaxSize:   100, // MB
			MaxAge:    int(lc.config.RotateConfig.MaxAge.Hours() / 24),
			Compress:  true,
			LocalTime: true,
		}
		return zapcore.AddSync(lumber), nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(file), nil
}

func (lc *LoggerComponent) buildCustomFileWriteSyncer(filePath string) (zapcore.WriteSyncer, error) {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(file), nil
}

func (lc *LoggerComponent) parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (lc *LoggerComponent) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	lc.logWithContext(ctx, zapcore.DebugLevel, msg, fields...)
}

func (lc *LoggerComponent) Info(ctx context.Context, msg string, fields ...zap.Field) {
	lc.logWithContext(ctx, zapcore.InfoLevel, msg, fields...)
}

func (lc *LoggerComponent) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	lc.logWithContext(ctx, zapcore.WarnLevel, msg, fields...)
}

func (lc *LoggerComponent) Error(ctx context.Context, msg string, fields ...zap.Field) {
	lc.logWithContext(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (lc *LoggerComponent) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	lc.logWithContext(ctx, zapcore.FatalLevel, msg, fields...)
	os.Exit(1)
}

func (lc *LoggerComponent) With(fields ...zap.Field) Logger {
	return &LoggerComponent{
		BaseComponent: lc.BaseComponent,
		config:        lc.config,
		zapLogger:     lc.zapLogger.With(fields...),
		sugar:         lc.sugar.With(fields),
	}
}

func (lc *LoggerComponent) Sync() error {
	if lc.zapLogger != nil {
		return lc.zapLogger.Sync()
	}
	return nil
}

func hasTraceField(fields []zap.Field) bool {
	for _, f := range fields {
		switch f.Key {
		case "trace_id", "trace-id":
			return true
		}
	}
	return false
}

func (lc *LoggerComponent) logWithContext(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	if lc.zapLogger == nil {
		return
	}
	traceID := lc.extractTraceID(ctx)
	if traceID != "" && !hasTraceField(fields) {
		fields = append([]zap.Field{zap.String(consts.KEY_TraceID, traceID)}, fields...)
	}
	switch level {
	case zapcore.DebugLevel:
		lc.zapLogger.Debug(msg, fields...)
	case zapcore.InfoLevel:
		lc.zapLogger.Info(msg, fields...)
	case zapcore.WarnLevel:
		lc.zapLogger.Warn(msg, fields...)
	case zapcore.ErrorLevel:
		lc.zapLogger.Error(msg, fields...)
	case zapcore.FatalLevel:
		lc.zapLogger.Fatal(msg, fields...)
	}
}

// extractTraceID: only use an existing OTel trace id; do not synthesize a
// distributed id locally.
func (lc *LoggerComponent) extractTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() && sc.TraceID().IsValid() {
		return sc.TraceID().String()
	}
	if v := ctx.Value(consts.KEY_TraceID); v != nil {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return ""
}

func (lc *LoggerComponent) GetLogger() Logger            { return lc }
func (lc *LoggerComponent) GetZapLogger() *zap.Logger    { return lc.zapLogger }
func (lc *LoggerComponent) GetSugar() *zap.SugaredLogger { return lc.sugar }
