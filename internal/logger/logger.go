package logger

import (
	"log"
	"os"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

type Logger struct {
	level level
}

func New(levelName string) *Logger {
	return &Logger{
		level: parseLevel(levelName),
	}
}

func parseLevel(name string) level {
	switch name {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.level <= levelDebug {
		log.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l.level <= levelInfo {
		log.Printf("[INFO] "+msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.level <= levelWarn {
		log.Printf("[WARN] "+msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...interface{}) {
	log.Printf("[ERROR] "+msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	log.Printf("[FATAL] "+msg, args...)
	os.Exit(1)
}
