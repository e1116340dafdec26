package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about sync outcomes
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogEntry logs a sync entry with appropriate emoji and formatting
func (u *UserLogger) LogEntry(entry Entry) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch entry.Status {
	case StatusNew:
		prefix = "✨"
		action = "Added"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case StatusUpdated:
		prefix = "🔄"
		action = "Updated"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case StatusSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case StatusUnchanged:
		prefix = "👍"
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix = "❓"
		action = "Unknown"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s %s", action, entry.Kind, entry.Name)
	if entry.Library != "" {
		msg += fmt.Sprintf(" (%s)", entry.Library)
	}

	printer.Println(msg)
	u.log.Info().Msg(msg) // Also log to zerolog for debugging
}

// 📊 LogLibrary logs the start of one library sync
func (u *UserLogger) LogLibrary(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogSummary logs the final sync outcome
func (u *UserLogger) LogSummary(m *Manager, err error) {
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println("sync failed")
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg("sync failed")
		return
	}

	added, updated, unchanged, skipped := m.Counts()
	description := fmt.Sprintf("%d added, %d updated, %d unchanged, %d skipped",
		added, updated, unchanged, skipped)
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
	u.log.Info().Msg(description)
}
