package operation

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/status"
	"github.com/refx-sh/refx/pkg/store"
)

// 🎯 Operator defines the main interface for library operations
type Operator interface {
	// Sync updates the store with the latest remote library content
	Sync(ctx context.Context) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the refx configuration, including library definitions
	Config *config.Config
	// Store receives the synced expressions and groups
	Store *store.Store
	// StatusMgr tracks per-entry sync outcomes
	StatusMgr *status.Manager
	// UserLogger renders user-facing sync lines; optional
	UserLogger *status.UserLogger
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.StatusMgr == nil {
		return nil, errors.Errorf("status manager is required")
	}
	return &operator{
		config:     opts.Config,
		store:      opts.Store,
		statusMgr:  opts.StatusMgr,
		userLogger: opts.UserLogger,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	config     *config.Config
	store      *store.Store
	statusMgr  *status.Manager
	userLogger *status.UserLogger
}

// Sync method is implemented in sync.go

// 📚 LibraryFile is the format of one remote expression-library file
type LibraryFile struct {
	Expressions []store.Expression `yaml:"expressions"`
	Groups      []store.Group      `yaml:"groups"`
}
