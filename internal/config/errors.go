package config

import "github.com/ggoeuh/DAL-sub000/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errDecodeConfig = &apperr.Error{
		Message: "decoding config file failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errEmptyUser = &apperr.Error{
		Message: "user cannot be empty",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend %q (must be bolt or sqlite)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q",
	}

	errOutOfRange = &apperr.Error{
		Message: "%s must be between %v and %v, got %v",
	}
)
