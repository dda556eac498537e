/*
Command fontica-server serves a font catalog over HTTP.

Usage:

    fontica-server -dir ./fonts -base-url http://localhost:3000 -listen :3000

The catalog is read from a sqlite database (-db), a directory of font files
(-dir) or the Google Fonts directory (-google-key or GOOGLE_API_KEY).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/config"
	"github.com/npillmayer/fontica/service/fontapi"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracer traces with key 'fontica.api'
func tracer() tracing.Trace {
	return tracing.Select("fontica.api")
}

func main() {
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	dir := flag.String("dir", "", "Directory of font files")
	db := flag.String("db", "", "sqlite database with table 'fonts'")
	googleKey := flag.String("google-key", "", "API key for the Google Fonts directory")
	baseURL := flag.String("base-url", "", "Public URL of this server, used for font resource URLs (default http://localhost<listen>)")
	listen := flag.String("listen", config.DefaultListen, "Listen address")
	pageSize := flag.Int("page-size", config.DefaultPageSize, "Default page size")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.fontica.api":     *tlevel,
		"trace.fontica.catalog": *tlevel,
		"trace.fontica.config":  *tlevel,
		config.KeyCatalogDir:    *dir,
		config.KeyCatalogDB:     *db,
		config.KeyGoogleAPIKey:  *googleKey,
		config.KeyBaseURL:       *baseURL,
		config.KeyListen:        *listen,
		config.KeyPageSize:      *pageSize,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	settings := config.Load(conf)

	source, release, err := fontapi.OpenSource(settings)
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	defer release()
	gin.SetMode(gin.ReleaseMode)
	staticDir := ""
	if _, ok := source.(catalog.DirSource); ok {
		staticDir = settings.CatalogDir
	}
	handler := fontapi.NewHandler(catalog.NewIndexer(source), settings.PageSize)
	httpSrv := &http.Server{
		Addr:    settings.Listen,
		Handler: fontapi.NewRouter(handler, staticDir),
	}

	errCh := make(chan error, 1)
	go func() {
		tracer().Infof("font catalog server listening on %s", settings.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		tracer().Infof("shutdown signal received: %s", sig)
	case err := <-errCh:
		tracer().Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		tracer().Errorf("http shutdown error: %v", err)
	}
	tracer().Infof("server stopped")
}
