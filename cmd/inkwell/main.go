// Command inkwell edits rich-text documents in the terminal and stores
// their revisions in SQLite.
package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/internal/config"
	"github.com/iw2rmb/inkwell/internal/docstore"
	"github.com/iw2rmb/inkwell/internal/logging"
)

var CLI struct {
	Config string `name:"config" short:"c" help:"Config file path" type:"path"`

	Edit    EditCmd    `cmd:"" help:"Edit a stored document, or a new one when no id is given"`
	Import  ImportCmd  `cmd:"" help:"Import a text or raw JSON file as a new document"`
	Export  ExportCmd  `cmd:"" help:"Export a document as Markdown, HTML or raw JSON"`
	List    ListCmd    `cmd:"" help:"List stored documents"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// app carries the loaded configuration to commands. The logger and store
// are created on first use.
type app struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	store *docstore.Store
}

func (a *app) logger(quiet bool) (*zap.SugaredLogger, error) {
	if a.log != nil {
		return a.log, nil
	}
	// The editor owns the terminal; without a log file it logs nowhere.
	if quiet && a.cfg.Log.File == "" {
		a.log = zap.NewNop().Sugar()
		return a.log, nil
	}
	log, err := logging.New(a.cfg.Log.Level, a.cfg.Log.File)
	if err != nil {
		return nil, err
	}
	a.log = log
	return log, nil
}

func (a *app) openStore(log *zap.SugaredLogger) (*docstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := docstore.Open(a.cfg.Store.Path, log)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("inkwell"),
		kong.Description("Terminal rich-text editor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load(CLI.Config)
	ctx.FatalIfErrorf(err)

	a := &app{cfg: cfg}
	err = ctx.Run(a)
	a.close()
	ctx.FatalIfErrorf(err)
}
