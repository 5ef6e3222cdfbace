// Package identity makes sure commits have an author before any are attempted.
package identity

import (
	"context"
	"strings"

	"github.com/bashhack/commitpulse/internal/common"
	"github.com/bashhack/commitpulse/internal/errors"
)

const (
	// NameKey is the git configuration key for the author name
	NameKey = "user.name"

	// EmailKey is the git configuration key for the author contact address
	EmailKey = "user.email"
)

// Source reads the currently configured identity
type Source interface {
	Get(ctx context.Context, key string) (string, error)
}

// Sink persists identity values for the current user
type Sink interface {
	SetGlobal(ctx context.Context, key, value string) error
}

// Identity is an author name and contact address
type Identity struct {
	Name  string
	Email string
}

// Configurator writes fallback identity values when none are configured
type Configurator struct {
	source   Source
	sink     Sink
	fallback Identity
	logger   common.Logger
}

// NewConfigurator creates a Configurator
func NewConfigurator(source Source, sink Sink, fallback Identity, logger common.Logger) *Configurator {
	return &Configurator{
		source:   source,
		sink:     sink,
		fallback: fallback,
		logger:   logger,
	}
}

// Ensure checks both identity keys and, if either lookup fails or comes back
// empty, writes both fallback values globally. A failed lookup is the trigger
// for the fallback path, not an error; a failed write is.
func (c *Configurator) Ensure(ctx context.Context) error {
	if c.configured(ctx, NameKey) && c.configured(ctx, EmailKey) {
		c.logger.Info("Git identity already configured")
		return nil
	}

	c.logger.InfoToUser("No git identity configured, using %s <%s>", c.fallback.Name, c.fallback.Email)

	if err := c.sink.SetGlobal(ctx, NameKey, c.fallback.Name); err != nil {
		return errors.Wrapf(err, "failed to set %s", NameKey)
	}
	if err := c.sink.SetGlobal(ctx, EmailKey, c.fallback.Email); err != nil {
		return errors.Wrapf(err, "failed to set %s", EmailKey)
	}

	c.logger.Info("Configured fallback git identity")
	return nil
}

func (c *Configurator) configured(ctx context.Context, key string) bool {
	value, err := c.source.Get(ctx, key)
	if err != nil {
		c.logger.Info("Lookup of %s failed: %v", key, err)
		return false
	}
	return strings.TrimSpace(value) != ""
}
