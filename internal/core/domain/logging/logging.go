package logging

import "context"

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs an unexpected error together with its message so call sites
// don't have to repeat the "err" entry.
func Error(ctx context.Context, l Logger, err error, entries ...LogEntry) {
	l.Error(ctx, err.Error(), append(entries, Entry("err", err))...)
}
