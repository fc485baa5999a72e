package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trubrics/trubrics-cli/internal/config"
	"github.com/trubrics/trubrics-cli/internal/ctxlog"
)

// ErrIdentityRejected is returned by Init when the trubrics manager rejects
// the supplied identity. No config file is written in that case.
var ErrIdentityRejected = errors.New("identity rejected")

// InitParams carries the already-prompted values for the init pipeline.
// APIURL and IdentityID are both empty for a local-only configuration.
type InitParams struct {
	RunPath    string
	ConfigDir  string
	APIURL     string
	IdentityID string
}

// Init validates the run file path, performs the one-time auth handshake when
// an API URL was supplied, and writes the config record. On handshake
// rejection or network failure nothing is written: a record is never
// persisted with a half-configured remote.
func (a *App) Init(ctx context.Context, params InitParams) (*config.Record, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(params.RunPath)
	if err != nil || info.IsDir() || filepath.Ext(params.RunPath) != ".hcl" {
		return nil, fmt.Errorf("trubric run file path '%s' does not exist or is not an .hcl file", params.RunPath)
	}

	rec := &config.Record{RunPath: params.RunPath}

	if params.APIURL != "" {
		result, err := a.remote.VerifyIdentity(ctx, params.APIURL, params.IdentityID)
		if err != nil {
			// Fatal during init: the one-shot handshake is not retried.
			return nil, err
		}
		if !result.OK {
			return nil, fmt.Errorf("%w: %s", ErrIdentityRejected, result.Message)
		}
		rec.APIURL = params.APIURL
		rec.IdentityID = params.IdentityID
		logger.Info("Identity verified with the trubrics manager.", "api_url", params.APIURL)
	} else {
		logger.Info("Trubrics config set without trubrics manager authentication.")
	}

	if err := config.Save(params.ConfigDir, rec); err != nil {
		return nil, err
	}
	logger.Info("Trubrics configuration written.", "dir", params.ConfigDir)
	return rec, nil
}
