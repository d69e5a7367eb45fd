package orchestrator

import (
	"log"
	"sync"
	"time"
)

// Log severity levels embedded as a bracketed prefix in each entry. The
// dashboard parses the prefix back out for styling and must never mutate it.
const (
	LevelInfo    = "INFO"
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
	LevelSuccess = "SUCCESS"
)

// recentLogs is how many entries Logs returns; the ring itself keeps more so
// TotalLogs can report lifetime volume.
const recentLogs = 50

var (
	logMu      sync.Mutex
	systemLogs []string
	logTotal   int
	logSink    func(entry string)
)

// SetLogSink registers a callback invoked for every new log entry, used to
// fan entries out to live dashboard clients. Pass nil to detach.
func SetLogSink(sink func(entry string)) {
	logMu.Lock()
	logSink = sink
	logMu.Unlock()
}

// AddLog appends a formatted entry to the activity log and mirrors it to the
// process log and any registered sink.
func AddLog(level, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := "[" + level + "] " + timestamp + " - " + message

	logMu.Lock()
	systemLogs = append(systemLogs, entry)
	logTotal++
	if len(systemLogs) > recentLogs*4 {
		systemLogs = systemLogs[len(systemLogs)-recentLogs*2:]
	}
	sink := logSink
	logMu.Unlock()

	log.Println(entry)
	if sink != nil {
		sink(entry)
	}
}

// Logs returns the most recent entries, oldest first.
func Logs() []string {
	logMu.Lock()
	defer logMu.Unlock()

	start := 0
	if len(systemLogs) > recentLogs {
		start = len(systemLogs) - recentLogs
	}
	out := make([]string, len(systemLogs)-start)
	copy(out, systemLogs[start:])
	return out
}

// LogCount reports how many entries were logged over the process lifetime.
func LogCount() int {
	logMu.Lock()
	defer logMu.Unlock()
	return logTotal
}

// ResetLogs clears the activity log. Used by tests.
func ResetLogs() {
	logMu.Lock()
	systemLogs = nil
	logTotal = 0
	logMu.Unlock()
}
