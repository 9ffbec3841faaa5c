package logger

import (
	"log/slog"
	"os"
)

// InitLogger inicializa el logger global del servicio.
// Crea un handler JSON con salida a stdout.
func InitLogger() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
