package logger

import "go.uber.org/zap"

var log = zap.NewNop().Sugar()

// Init replaces the no-op logger. Release mode logs JSON at info level.
func Init(release bool) {
	var (
		l   *zap.Logger
		err error
	)
	if release {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, kv ...interface{}) {
	log.Debugw(msg, kv...)
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}

func Fatal(msg string, kv ...interface{}) {
	log.Fatalw(msg, kv...)
}
