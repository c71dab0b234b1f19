package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
	mu   sync.RWMutex
)

// Init инициализирует глобальный логгер
// env: "development" (консольный вывод, уровень debug) или любое другое значение (JSON, info)
func Init(env string) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stdout"}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Конфиг собран в коде, сюда попадаем только при поломанном stdout
		base = zap.NewExample()
	}

	Set(base)
}

// Set подменяет глобальный логгер (в тестах - zap.NewNop или zaptest)
func Set(l *zap.Logger) {
	mu.Lock()
	log = l.Sugar()
	mu.Unlock()
}

// GetLogger возвращает глобальный логгер
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}

	// Fallback если Init не вызван
	once.Do(func() { Init("development") })
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Sync сбрасывает буферы, вызывается при остановке
func Sync() {
	_ = GetLogger().Sync()
}

func Debug(msg string, args ...any) {
	GetLogger().Debugw(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Infow(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warnw(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Errorw(msg, args...)
}

// Fatal логирует ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Errorw(msg, args...)
	Sync()
	os.Exit(1)
}

// With создает логгер с дополнительными полями
// Пример: logger.With("user_id", id).Info("user logged in")
func With(args ...any) *zap.SugaredLogger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *zap.SugaredLogger {
	return GetLogger().With("error", err.Error())
}
