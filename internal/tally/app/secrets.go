package app

import (
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tally/pkg/cryptox"
)

var errHalfSecrets = errors.New("app: TALLY_ACCESS_SECRET and TALLY_REFRESH_SECRET must be set together")

// resolveSecrets returns the configured token secrets. When neither is set a
// random pair is generated, so every token dies with the process.
func resolveSecrets(cfg Config, logger *slog.Logger) (access, refresh []byte, err error) {
	switch {
	case cfg.AccessSecret != "" && cfg.RefreshSecret != "":
		return []byte(cfg.AccessSecret), []byte(cfg.RefreshSecret), nil
	case cfg.AccessSecret != "" || cfg.RefreshSecret != "":
		return nil, nil, errHalfSecrets
	}

	if cfg.Env == "prod" {
		logger.Error("token secrets not configured in prod, generating ephemeral ones")
	} else {
		logger.Warn("token secrets not configured, generating ephemeral ones; sessions end on restart")
	}

	a, err := cryptox.GenerateSecret(cryptox.MinSecretSize)
	if err != nil {
		return nil, nil, err
	}
	r, err := cryptox.GenerateSecret(cryptox.MinSecretSize)
	if err != nil {
		return nil, nil, err
	}
	return []byte(a), []byte(r), nil
}
