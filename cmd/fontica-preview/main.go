/*
Command fontica-preview is an interactive preview client for a font catalog
server.

It lists a page of the catalog, loads the visible fonts and tells for every
font whether it covers the preview text. Enter 'help' for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/config"
	"github.com/npillmayer/fontica/core/font/coverage"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"github.com/npillmayer/fontica/core/font/loader"
	"github.com/npillmayer/fontica/core/session"
	"github.com/npillmayer/fontica/service/fontapi"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontica.session'
func tracer() tracing.Trace {
	return tracing.Select("fontica.session")
}

func main() {
	initDisplay()

	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	server := flag.String("server", "http://localhost"+config.DefaultListen, "URL of the font catalog server")
	pageSize := flag.Int("page-size", config.DefaultPageSize, "Fonts per page")
	fallback := flag.String("fallback", "", "System font to compare against (default Go Sans)")
	cache := flag.Bool("cache", false, "Cache font resources on disk")
	text := flag.String("text", session.DefaultPreviewText, "Preview text")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.fontica.session":  *tlevel,
		"trace.fontica.fonts":    *tlevel,
		"trace.fontica.coverage": *tlevel,
		"trace.fontica.catalog":  *tlevel,
		config.KeyPageSize:       *pageSize,
		config.KeyFallbackFont:   *fallback,
		config.KeyCacheFonts:     *cache,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	settings := config.Load(conf)
	pterm.Info.Println("Welcome to the fontica preview")

	fetcher, err := fontapi.NewFetcher(settings)
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	client := loader.New(fetcher, fontregistry.GlobalRegistry())
	checker := coverage.NewChecker(client, client.Registry(), coverage.FallbackFromConfig(settings.FallbackFont))
	lister := catalog.HTTPLister{BaseURL: *server}
	sess := session.New(lister, client, checker, settings.PageSize)
	defer sess.Close()
	sess.SetPreviewText(*text)

	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "fontica > ",
		AutoComplete: completer(),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	client.SetObserver(func(id string, state loader.LoadState) {
		if state == loader.Failed {
			fmt.Fprintf(repl.Stderr(), "font %s failed to load\n", id)
		}
	})
	intp := &Intp{repl: repl, session: sess, checker: checker, registry: client.Registry(), server: *server}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	intp.refresh(ctx)
	cancel()
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
