package cmd

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sss/cli/internal/auth"
	"sss/cli/internal/backend"
	"sss/cli/internal/config"
	"sss/cli/internal/httperrors"
	"sss/cli/internal/keychain"
	"sss/cli/internal/logging"
	"sss/cli/internal/navigation"
	"sss/cli/internal/notify"
	"sss/cli/internal/reactive"
	"sss/cli/internal/session"
)

// app is the object graph shared by all commands.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	rt      *reactive.Runtime
	history *navigation.History
	tray    *notify.Tray
	facade  *session.Facade
	// store is nil when the OS keychain is unavailable; the session then
	// lasts only for this process.
	store *auth.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURLFlag != "" {
		cfg.APIBaseURL = apiURLFlag
	}
	if frontURLFlag != "" {
		cfg.FrontBaseURL = frontURLFlag
	}

	log := logging.New(cfg.LogLevel, verbose)
	if cfg.APIBaseURL == "" || cfg.FrontBaseURL == "" {
		pterm.Warning.Println("SSS_CORE_API_BASE_URL or SSS_CORE_FRONT_BASE_URL is empty; generated links will be relative")
	}

	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", cfg.APIBaseURL, err)
	}

	jar := backend.NewJar()
	var store *auth.Service
	if km, err := keychain.GetManager(); err == nil {
		store = auth.NewService(km, jar, base, log)
		if err := store.Restore(); err != nil {
			log.Warn("could not restore session", "error", err)
		}
	} else {
		log.Debug("keychain unavailable, session will not persist", "error", err)
	}

	rt := reactive.NewRuntime()
	history := navigation.NewHistory(rt, cfg.FrontBaseURL)
	tray := notify.NewTray()
	api := backend.New(cfg.APIBaseURL, backend.WithJar(jar), backend.WithLogger(log))

	facade := session.New(rt, api, history, tray, session.Config{
		APIBaseURL:      cfg.APIBaseURL,
		FrontBaseURL:    cfg.FrontBaseURL,
		AdminPathPrefix: cfg.AdminPathPrefix,
	}, session.WithLogger(log))

	return &app{
		cfg:     cfg,
		log:     log,
		rt:      rt,
		history: history,
		tray:    tray,
		facade:  facade,
		store:   store,
	}, nil
}

// Close stops pending toast timers.
func (a *app) Close() {
	_ = a.tray.Close()
}

// persist saves the current session when a keychain is available.
func (a *app) persist() {
	if a.store == nil || a.facade.IsLogout() {
		return
	}
	if err := a.store.Persist(a.facade.Member().Snapshot()); err != nil {
		a.log.Warn("could not save session", "error", err)
	}
}

// forget drops the stored session when a keychain is available.
func (a *app) forget() {
	if a.store == nil {
		return
	}
	if err := a.store.Forget(); err != nil {
		a.log.Warn("could not clear stored session", "error", err)
	}
}

// host is the API host used in error hints.
func (a *app) host() string {
	return httperrors.ExtractHostFromURL(a.cfg.APIBaseURL)
}

// explain prints a friendly message for a failed API call and returns err
// for cobra.
func (a *app) explain(err error, action string) error {
	if err == nil {
		return nil
	}
	a.log.Debug("request failed", "action", action, "error", err)
	return httperrors.FormatNetworkError(err, action, a.host())
}

func printNotLoggedIn() {
	fmt.Println("🔒 You're not logged in yet!")
	fmt.Println("   Run 'sss login' to get started.")
}
