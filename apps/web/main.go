package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	echoweb "github.com/trezcool/lms/apps/web/echo"
	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/browser"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/user"
	logsvc "github.com/trezcool/lms/services/logger"
	inmemdb "github.com/trezcool/lms/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zl, err := logsvc.NewZapLogger(conf, "WEB")
	if err != nil {
		panic(fmt.Sprintf("setting up zap: %v", err))
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))
	defer func() { _ = logger.Sync() }()

	// set up DB
	db, err := inmemdb.OpenSeeded(conf.DemoPassword)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}

	// set up services
	usrSvc := user.NewService(inmemdb.NewUserRepository(db))
	crsSvc := course.NewService(inmemdb.NewCourseRepository(db), logger)
	tabs := browser.NewManager(usrSvc, logger)

	// drop tabs nobody used for a while
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go tabs.Run(sweepCtx, conf.Session.SweepInterval, conf.Session.IdleTimeout)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.Publish("tabs", expvar.Func(func() interface{} { return tabs.Len() }))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start Web Service

	server, err := echoweb.NewServer(
		echoweb.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			CourseSvc:  crsSvc,
			Tabs:       tabs,
			Validate:   validate,
			Translator: translator,
		},
	)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
