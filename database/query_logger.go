package database

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm/logger"
)

// QueryLog represents a single SQL query log entry
type QueryLog struct {
	ID        int           `json:"id"`
	SQL       string        `json:"sql"`
	Duration  time.Duration `json:"duration"`
	Rows      int64         `json:"rows"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// QueryLogger keeps a bounded in-memory ring of executed SQL queries
// for the debug endpoints.
type QueryLogger struct {
	mu      sync.RWMutex
	queries []QueryLog
	maxLogs int
	counter int
}

// SQLLogger is the process-wide query log instance.
var SQLLogger = NewQueryLogger(100)

// NewQueryLogger creates a query logger holding at most maxLogs entries.
func NewQueryLogger(maxLogs int) *QueryLogger {
	return &QueryLogger{
		queries: make([]QueryLog, 0, maxLogs),
		maxLogs: maxLogs,
	}
}

// Record appends one executed statement, evicting the oldest entry once
// the ring is full.
func (ql *QueryLogger) Record(sql string, duration time.Duration, rows int64, err error) {
	ql.mu.Lock()
	defer ql.mu.Unlock()

	ql.counter++
	entry := QueryLog{
		ID:        ql.counter,
		SQL:       sql,
		Duration:  duration,
		Rows:      rows,
		Timestamp: time.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	ql.queries = append(ql.queries, entry)
	if len(ql.queries) > ql.maxLogs {
		ql.queries = ql.queries[len(ql.queries)-ql.maxLogs:]
	}
}

// Recent returns the most recent n queries, newest first.
func (ql *QueryLogger) Recent(n int) []QueryLog {
	ql.mu.RLock()
	defer ql.mu.RUnlock()

	if n > len(ql.queries) {
		n = len(ql.queries)
	}
	result := make([]QueryLog, 0, n)
	for i := len(ql.queries) - 1; i >= len(ql.queries)-n; i-- {
		result = append(result, ql.queries[i])
	}
	return result
}

// Len returns the number of retained entries.
func (ql *QueryLogger) Len() int {
	ql.mu.RLock()
	defer ql.mu.RUnlock()
	return len(ql.queries)
}

// Count returns the total number of statements seen since startup.
func (ql *QueryLogger) Count() int {
	ql.mu.RLock()
	defer ql.mu.RUnlock()
	return ql.counter
}

// Clear removes all logged queries
func (ql *QueryLogger) Clear() {
	ql.mu.Lock()
	defer ql.mu.Unlock()
	ql.queries = ql.queries[:0]
}

// traceLogger is a GORM logger that mirrors every traced statement into
// SQLLogger.
type traceLogger struct {
	logger.Interface
}

func (l *traceLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.Interface != nil {
		l.Interface.Trace(ctx, begin, fc, err)
	}

	sql, rows := fc()
	SQLLogger.Record(sql, time.Since(begin), rows, err)
}
