package logsvc

import (
	"log"
	"os"

	"github.com/sisacad/academico/core"
)

// ConsoleLogger logs to the standard logger only; the default in DEV.
type ConsoleLogger struct {
	std *log.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std}
}

func (l ConsoleLogger) print(level, msg string, args []interface{}) {
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }

func (l ConsoleLogger) Info(msg string, args ...interface{}) { l.print("INFO", msg, args) }

func (l ConsoleLogger) Warn(msg string, args ...interface{}) { l.print("WARN", msg, args) }

func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	os.Exit(1)
}
