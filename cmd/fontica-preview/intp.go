package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontica/core"
	"github.com/npillmayer/fontica/core/catalog"
	"github.com/npillmayer/fontica/core/font/coverage"
	"github.com/npillmayer/fontica/core/font/fontregistry"
	"github.com/npillmayer/fontica/core/font/loader"
	"github.com/npillmayer/fontica/core/session"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	session  *session.Session
	checker  *coverage.Checker
	registry *fontregistry.Registry
	server   string
}

// Command is a parsed input line.
type Command struct {
	op  string
	arg string
}

var commands = []string{"text", "size", "dir", "search", "category", "page", "next", "prev",
	"refresh", "wait", "reload", "suggest", "fonts", "show", "help", "quit"}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, cmd := range commands {
		if cmd == "category" {
			cats := []readline.PrefixCompleterInterface{readline.PcItem(string(catalog.CategoryAll))}
			for _, c := range catalog.Categories {
				cats = append(cats, readline.PcItem(string(c)))
			}
			items = append(items, readline.PcItem(cmd, cats...))
			continue
		}
		items = append(items, readline.PcItem(cmd))
	}
	return readline.NewPrefixCompleter(items...)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func parseCommand(line string) (Command, error) {
	op, arg, _ := strings.Cut(line, " ")
	cmd := Command{op: strings.ToLower(op), arg: strings.TrimSpace(arg)}
	for _, c := range commands {
		if c == cmd.op {
			return cmd, nil
		}
	}
	return cmd, fmt.Errorf("unknown command: %s", op)
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s := intp.session
	switch cmd.op {
	case "quit":
		return true, nil
	case "help":
		help()
	case "text":
		intp.show(s.SetPreviewText(cmd.arg))
	case "size":
		size, err := strconv.ParseFloat(cmd.arg, 64)
		if err != nil {
			return false, core.WrapError(err, core.EINVALID, "size must be a number")
		}
		pr := s.Params().Preview
		pr.SizePx = size
		intp.show(s.SetPreview(pr))
	case "dir":
		pr := s.Params().Preview
		pr.Direction = session.Direction(strings.ToLower(cmd.arg))
		intp.show(s.SetPreview(pr))
	case "search":
		intp.show(s.SetQuery(cmd.arg))
	case "category":
		view, err := s.SetCategory(catalog.Category(strings.ToLower(cmd.arg)))
		if err != nil {
			return false, err
		}
		intp.show(view)
	case "page", "next", "prev":
		page := s.Params().Page
		switch cmd.op {
		case "next":
			page++
		case "prev":
			page--
		default:
			n, err := strconv.Atoi(cmd.arg)
			if err != nil {
				return false, core.WrapError(err, core.EINVALID, "page must be a number")
			}
			page = n
		}
		view, err := s.SetPage(ctx, page)
		if err != nil {
			return false, err
		}
		intp.show(view)
	case "refresh":
		intp.refresh(ctx)
	case "wait":
		view, err := s.Await(ctx)
		if err != nil {
			return false, err
		}
		intp.show(view)
	case "reload":
		if err := s.Reload(cmd.arg); err != nil {
			return false, err
		}
		intp.show(s.View())
	case "suggest":
		if names := s.Suggest(cmd.arg); len(names) > 0 {
			pterm.Println(strings.Join(names, ", "))
		} else {
			pterm.Println("no suggestions")
		}
	case "fonts":
		intp.registry.LogFontList()
	case "show":
		intp.show(s.View())
	}
	return false, nil
}

func (intp *Intp) refresh(ctx context.Context) {
	view, err := intp.session.Refresh(ctx)
	switch {
	case errors.Is(err, catalog.ErrEmptyCatalog):
		pterm.Info.Println("The font catalog is empty")
	case err != nil:
		pterm.Error.Printfln("cannot list fonts from %s: %s", intp.server, core.UserMessage(err))
	default:
		intp.show(view)
	}
}

func (intp *Intp) show(view session.View) {
	pr := view.Params.Preview
	pterm.Printfln("Preview %q at %.0fpx (%s), page %d/%d, %d fonts, compared to %s", abbreviate(pr.Text, 40),
		pr.SizePx, pr.Direction, view.Page, view.TotalPages, view.TotalFonts, intp.checker.Fallback().Fontname)
	if len(view.VisibleFonts) == 0 {
		pterm.Println("no fonts to show")
		return
	}
	data := pterm.TableData{{"Font", "Category", "State", "Coverage"}}
	for _, rec := range view.VisibleFonts {
		state := view.States[rec.ID]
		verdict := view.Verdict(rec.ID).String()
		switch state {
		case loader.Loading, loader.Unloaded:
			verdict = "loading…"
		case loader.Failed:
			verdict = pterm.Red("failed to load")
		default:
			if view.Verdict(rec.ID) == session.Supported {
				verdict = pterm.Green(verdict)
			}
		}
		data = append(data, []string{rec.DisplayName, string(rec.Category), state.String(), verdict})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
}

func help() {
	pterm.Println(`
text <string>       set preview text
size <px>           set preview size (12…80)
dir ltr|rtl|auto    set writing direction
search <text>       filter by name (empty to clear)
category <c>        filter by category ('all' to clear)
page <n>|next|prev  switch catalog page
refresh             list the current page again
wait                wait for fonts to load
reload <id>         re-load a font which failed to load
suggest <prefix>    suggest font names
fonts               log the fonts loaded so far
show                show the current view
quit                quit (or <ctrl>D)`)
}
