// Package bootstrap is the composition root shared by the server binary and
// the end-to-end tests: it wires stores, services and plugin apps into a
// plugin host and returns the resulting HTTP handler.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sqliteadapter "github.com/ericfisherdev/openedx-plugin/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/openedx-plugin/internal/adapter/driving/web"
	"github.com/ericfisherdev/openedx-plugin/internal/application"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
	"github.com/ericfisherdev/openedx-plugin/internal/plugin"
	"github.com/ericfisherdev/openedx-plugin/internal/plugins/edxapi"
	"github.com/ericfisherdev/openedx-plugin/internal/plugins/mobileapi"
)

// Options selects the host flavour and the optional release check.
type Options struct {
	ProjectType plugin.ProjectType
	Environment plugin.SettingsType
	// ReleaseChecker may be nil to disable release lookups.
	ReleaseChecker driven.ReleaseChecker
	ReleaseRepo    string
}

// App is a fully set up plugin host.
type App struct {
	Host     *plugin.Host
	Handler  http.Handler
	Releases *application.ReleaseService
	Switches driven.SwitchStore
	Points   driven.CoursePointsStore
}

// hostDefaults are the host settings plugin settings modules merge over.
func hostDefaults() plugin.Settings {
	return plugin.Settings{
		"PLATFORM_NAME": "Open edX",
	}
}

// New wires every plugin app into a new host and runs Setup, which invokes
// each app's readiness hook once. db must already be migrated.
func New(ctx context.Context, opts Options, db *sqliteadapter.DB, logger *slog.Logger) (*App, error) {
	host, err := plugin.NewHost(opts.ProjectType, opts.Environment, hostDefaults(), logger)
	if err != nil {
		return nil, err
	}

	pointsStore := sqliteadapter.NewCoursePointsRepo(db)
	switchStore := sqliteadapter.NewWaffleSwitchRepo(db)

	readiness := application.NewReadinessService(logger)
	releases := application.NewReleaseService(opts.ReleaseChecker, opts.ReleaseRepo, edxapi.Version, logger)

	api := httphandler.NewHandler(pointsStore, releases, host, logger)

	if err := edxapi.Install(host, edxapi.Deps{API: api, Switches: switchStore, Readiness: readiness}); err != nil {
		return nil, fmt.Errorf("install %s: %w", edxapi.Name, err)
	}
	if err := mobileapi.Install(host, mobileapi.Deps{API: api, Switches: switchStore, Readiness: readiness}); err != nil {
		return nil, fmt.Errorf("install %s: %w", mobileapi.Name, err)
	}

	if err := host.Setup(ctx); err != nil {
		return nil, fmt.Errorf("plugin setup: %w", err)
	}

	mux := host.Handler()
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(host, switchStore, logger))

	return &App{
		Host:     host,
		Handler:  httphandler.Wrap(mux, logger),
		Releases: releases,
		Switches: switchStore,
		Points:   pointsStore,
	}, nil
}
