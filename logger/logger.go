package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

var (
	AppLogger    *log.Logger
	AccessLogger *log.Logger
	ErrorLogger  *log.Logger

	logLevel      string
	appLogFile    *os.File
	accessLogFile *os.File
	initialized   bool
)

// InitGlobalLoggers opens the application and HTTP access log files and wires
// up the package-level loggers. Safe to call again with the same settings.
func InitGlobalLoggers(appLogPath, accessLogPath, level string) error {
	if initialized && appLogFile != nil && accessLogFile != nil && strings.ToUpper(level) == logLevel {
		return nil
	}
	if appLogFile != nil {
		appLogFile.Close()
		appLogFile = nil
	}
	if accessLogFile != nil {
		accessLogFile.Close()
		accessLogFile = nil
	}

	logLevel = strings.ToUpper(level)
	if logLevel == "" {
		logLevel = "INFO"
	}

	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	appLogWriter := openLogWriter(appLogPath, "app", &appLogFile)
	AppLogger = log.New(appLogWriter, "APP: ", log.Ldate|log.Ltime|log.Lshortfile)

	accessLogWriter := openLogWriter(accessLogPath, "access", &accessLogFile)
	AccessLogger = log.New(accessLogWriter, "ACCESS: ", log.Ldate|log.Ltime)

	if !initialized {
		AppLogger.Printf("App logger initialized. Log level: %s. Output file: %s", logLevel, appLogPath)
	}
	initialized = true
	return nil
}

// openLogWriter opens (creating directories as needed) a log file for append.
// On failure the returned writer discards output so the process keeps running.
func openLogWriter(path, name string, fileOut **os.File) io.Writer {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		ErrorLogger.Printf("Failed to create %s log directory %s: %v. These logs will be discarded.", name, dir, err)
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		ErrorLogger.Printf("Failed to open %s log file %s: %v. These logs will be discarded.", name, path, err)
		return io.Discard
	}
	*fileOut = f
	return f
}

func Info(format string, v ...interface{}) {
	if AppLogger != nil && (logLevel == "INFO" || logLevel == "DEBUG") {
		AppLogger.Printf(format, v...)
	}
}

func Debug(format string, v ...interface{}) {
	if AppLogger != nil && logLevel == "DEBUG" {
		AppLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if AppLogger != nil && logLevel != "ERROR" {
		AppLogger.Printf(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Print(message)
	}
	if AppLogger != nil && appLogFile != nil {
		AppLogger.Print(message)
	}
}

func Fatal(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	if ErrorLogger != nil {
		ErrorLogger.Fatal(message)
	} else {
		log.Fatal(message)
	}
}

// Access writes one line per served HTTP request to the access log.
func Access(format string, v ...interface{}) {
	if AccessLogger != nil {
		AccessLogger.Printf(format, v...)
	}
}

func CloseLogFiles() {
	if appLogFile != nil {
		AppLogger.Println("Closing app log file.")
		appLogFile.Close()
		appLogFile = nil
	}
	if accessLogFile != nil {
		accessLogFile.Close()
		accessLogFile = nil
	}
	initialized = false // Allow re-initialization if needed (e.g. tests)
}
