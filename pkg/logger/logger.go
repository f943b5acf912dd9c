package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New cria o logger da aplicação. Em ambiente de desenvolvimento usa saída
// colorida no console; em produção emite JSON estruturado em stdout.
func New(level, env string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if strings.EqualFold(env, "development") {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(out)
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(lvl).With().Timestamp().Str("service", "gestao-api").Logger()
}
