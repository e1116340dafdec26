package opts

import (
	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/engine"
	"github.com/refx-sh/refx/pkg/log"
	"github.com/refx-sh/refx/pkg/store"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	ConfigPath string
	Store      *store.Store
	Engine     *engine.Engine
	Logger     *log.Logger

	// BufferPath is the file acting as the active buffer; "-" means
	// stdin/stdout.
	BufferPath string
}

// Settings assembles the explicit engine settings for one invocation from
// the persisted toggles.
func (o *RootOpts) Settings() engine.Settings {
	return engine.Settings{
		UseRegex:        o.Config.Settings.UseRegex,
		SelectionOnly:   o.Config.Settings.SelectionOnly,
		CaseInsensitive: o.Config.Settings.CaseInsensitive,
		ExpandLineBreak: o.Config.Settings.ExpandLineBreak,
		ExpandTab:       o.Config.Settings.ExpandTab,
	}
}
