package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New создаёт и настраивает новый экземпляр slog.Logger
// уровень логирования определяется строковым параметром из конфига
func New(levelStr string) *slog.Logger {
	var level slog.Level

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		// если в конфиге указано что-то некорректное, используем INFO
		level = slog.LevelInfo
	}

	// логи идут в stderr: stdout занят выводом самих команд
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}
