package db

import (
	"log/slog"

	"itemsapi/src/infra/logger"
)

func discardLogger() *slog.Logger {
	return logger.Discard()
}
