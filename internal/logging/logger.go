package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// EventFormatter renders one line per event with a unique event id so
// entries can be referenced individually when auditing the log.
type EventFormatter struct {
	SystemName string
}

func (f *EventFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))

	if len(entry.Data) > 0 {
		for k, v := range entry.Data {
			b.WriteString(fmt.Sprintf(", %s: %v", k, v))
		}
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

// Init configures the shared logger to write rotated files alongside
// stderr. Safe to call more than once; the last call wins.
func Init(logFile string) {
	dir := filepath.Dir(logFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			logrus.Fatalf("Failed to create log directory: %v", err)
		}
	}

	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	Logger.SetOutput(io.MultiWriter(os.Stderr, rotated))
	Logger.SetFormatter(&EventFormatter{SystemName: "nexusboard"})
	Logger.SetLevel(logrus.InfoLevel)
}
