package test

import (
	"os"

	logging "github.com/inconshreveable/log15"
)

// LogHandler returns the log15 handler for tests, selected by
// `COUNCIL_LOG_HANDLER`; `null` discards everything.
func LogHandler() logging.Handler {
	handlers := map[string]func() logging.Handler{
		"null": func() logging.Handler {
			return logging.DiscardHandler()
		},
		"stdout": func() logging.Handler {
			return logging.CallerStackHandler("%+v", logging.StdoutHandler)
		},
	}

	handler := handlers["null"]
	if h, ok := handlers[os.Getenv("COUNCIL_LOG_HANDLER")]; ok {
		handler = h
	}

	return handler()
}
