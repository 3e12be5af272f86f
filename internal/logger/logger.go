package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName    = "logs"
	defaultLogFilename   = "app.log"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
)

// Options 日志输出配置
type Options struct {
	Level      string // 为空时 debug 模式使用 debug 级别，否则 info
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// L 全局结构化日志实例
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallbackLog  *zap.Logger
)

// Init 初始化全局日志
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New 创建日志实例：debug 模式输出到控制台，其余模式 JSON 写入滚动文件
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")
	level := resolveLevel(options.Level, debug)

	if debug {
		return build(zapcore.NewConsoleEncoder(newEncoderConfig()), zapcore.AddSync(os.Stdout), level)
	}

	writeSyncer, err := newFileWriteSyncer(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed, fallback to stdout: %v\n", err)
		writeSyncer = zapcore.AddSync(os.Stdout)
	}
	return build(zapcore.NewJSONEncoder(newEncoderConfig()), writeSyncer, level)
}

func build(encoder zapcore.Encoder, ws zapcore.WriteSyncer, level zap.AtomicLevel) *zap.Logger {
	core := zapcore.NewCore(encoder, ws, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func newEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return encoderConfig
}

func resolveLevel(raw string, debug bool) zap.AtomicLevel {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		if parsed, err := zap.ParseAtomicLevel(strings.ToLower(trimmed)); err == nil {
			return parsed
		}
	}
	if debug {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

// StdLogger 返回兼容标准库 log 的 logger
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z 返回可用的结构化日志实例
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	return fallbackLogger()
}

// S 返回可用的 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 返回带上下文字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

// Sync 刷新缓冲区，进程退出前调用
func Sync() {
	_ = Z().Sync()
}

// Debugw 输出 debug 级别日志
func Debugw(message string, kv ...interface{}) {
	S().Debugw(message, kv...)
}

// Infow 输出 info 级别日志
func Infow(message string, kv ...interface{}) {
	S().Infow(message, kv...)
}

// Warnw 输出 warn 级别日志
func Warnw(message string, kv ...interface{}) {
	S().Warnw(message, kv...)
}

// Errorw 输出 error 级别日志
func Errorw(message string, kv ...interface{}) {
	S().Errorw(message, kv...)
}

func fallbackLogger() *zap.Logger {
	fallbackOnce.Do(func() {
		fallbackLog = build(
			zapcore.NewConsoleEncoder(newEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(zap.InfoLevel),
		)
	})
	return fallbackLog
}

func newFileWriteSyncer(options Options) (zapcore.WriteSyncer, error) {
	logFilePath, err := resolveLogFilePath(options)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    positiveOr(options.MaxSizeMB, defaultLogMaxSizeMB),
		MaxBackups: positiveOr(options.MaxBackups, defaultLogMaxBackups),
		MaxAge:     positiveOr(options.MaxAgeDays, defaultLogMaxAgeDays),
		Compress:   options.Compress,
	}), nil
}

func resolveLogFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir failed: %w", err)
		}
		dir = filepath.Join(workDir, defaultLogDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir failed: %w", err)
	}

	filename := strings.TrimSpace(options.Filename)
	if filename == "" {
		filename = defaultLogFilename
	}
	logFilePath := filepath.Join(dir, filename)

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file failed: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close log file failed: %w", err)
	}
	return logFilePath, nil
}

func positiveOr(value int, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
