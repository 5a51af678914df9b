package logger

import "log"

// A LoggerOptFn is a functional option configuring a SwitchbackLogger when constructing a new one.
type LoggerOptFn func(*SwitchbackLogger)

// WithEnv sets the environment SwitchbackLogger is operating in.
func WithEnv(env string) LoggerOptFn {
	return func(l *SwitchbackLogger) {
		l.env = env
	}
}

// WithLevel sets the log level SwitchbackLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *SwitchbackLogger) {
		if level == LogLevelUnk {
			return
		}
		l.ll = level
	}
}

// WithLogger sets the log.Logger SwitchbackLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *SwitchbackLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *SwitchbackLogger) {
		l.skip = skip
	}
}
