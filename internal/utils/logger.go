package utils

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

var debugEnabled atomic.Bool

// SetLevel включает или выключает DEBUG-логи ("debug" включает, остальное выключает).
func SetLevel(level string) {
	debugEnabled.Store(strings.EqualFold(strings.TrimSpace(level), "debug"))
}

func format(message string, args []interface{}) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}

func line(tag, color, component, message string) {
	log.Printf("%s[%s]%s %s[%s]%s %s",
		color, tag, ColorReset,
		ColorCyan, component, ColorReset,
		message)
}

func LogInfo(component, message string, args ...interface{}) {
	line("INFO", ColorBlue, component, format(message, args))
}

func LogSuccess(component, message string, args ...interface{}) {
	line("SUCCESS", ColorGreen, component, format(message, args))
}

func LogWarning(component, message string, args ...interface{}) {
	line("WARNING", ColorYellow, component, format(message, args))
}

func LogError(component, message string, err error) {
	if err == nil {
		line("ERROR", ColorRed, component, message)
		return
	}
	line("ERROR", ColorRed, component, fmt.Sprintf("%s: %s%v%s", message, ColorRed, err, ColorReset))
}

func LogDebug(component, message string, args ...interface{}) {
	if !debugEnabled.Load() {
		return
	}
	line("DEBUG", ColorPurple, component, format(message, args))
}

// LogCall пишет вызов инструмента, полученный из ответа модели.
func LogCall(tool string, customerID int64, args map[string]any) {
	log.Printf("%s[CALL]%s %s%s%s | CustomerID: %s%d%s | Args: %v",
		ColorPurple, ColorReset,
		ColorWhite, tool, ColorReset,
		ColorYellow, customerID, ColorReset,
		args)
}

func LogRequest(method, path string, customerID int64) {
	log.Printf("%s[REQUEST]%s %s%s%s %s | CustomerID: %s%d%s",
		ColorCyan, ColorReset,
		ColorWhite, method, ColorReset,
		path,
		ColorYellow, customerID, ColorReset)
}

func LogResponse(path string, statusCode int, duration time.Duration) {
	color := ColorGreen
	if statusCode >= 400 && statusCode < 500 {
		color = ColorYellow
	} else if statusCode >= 500 {
		color = ColorRed
	}

	log.Printf("%s[RESPONSE]%s %s | Status: %s%d%s | Duration: %s%v%s",
		ColorGray, ColorReset,
		path,
		color, statusCode, ColorReset,
		ColorWhite, duration, ColorReset)
}

func LogDB(operation, query string, args ...interface{}) {
	log.Printf("%s[DB]%s %s[%s]%s %s",
		ColorGray, ColorReset,
		ColorWhite, operation, ColorReset,
		format(query, args))
}
