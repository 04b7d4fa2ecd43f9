package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/export"
)

type ImportCmd struct {
	File  string `arg:"" help:"File to import (.json is read as raw content)" type:"existingfile"`
	Title string `help:"Document title (default: file name)"`
}

func (c *ImportCmd) Run(a *app, kctx *kong.Context) error {
	log, err := a.logger(false)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	doc, err := decode(c.File, data)
	if err != nil {
		return fmt.Errorf("import %s: %w", c.File, err)
	}
	title := c.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}

	store, err := a.openStore(log)
	if err != nil {
		return err
	}
	id, err := store.Create(context.Background(), title, doc)
	if err != nil {
		return err
	}
	log.Infow("document imported", "id", id, "file", c.File, "blocks", doc.BlockCount())
	fmt.Fprintln(kctx.Stdout, id)
	return nil
}

type ExportCmd struct {
	ID     string `arg:"" help:"Document id"`
	Format string `short:"f" help:"Output format: md, html or raw (default from config)"`
	Out    string `short:"o" help:"Output file (default: stdout)" type:"path"`
}

func (c *ExportCmd) Run(a *app, kctx *kong.Context) error {
	log, err := a.logger(false)
	if err != nil {
		return err
	}
	store, err := a.openStore(log)
	if err != nil {
		return err
	}
	doc, _, err := store.Load(context.Background(), c.ID)
	if err != nil {
		return err
	}

	format := c.Format
	if format == "" {
		format = a.cfg.Export.Format
	}
	out, err := encode(format, doc)
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err = io.WriteString(kctx.Stdout, out)
		return err
	}
	return os.WriteFile(c.Out, []byte(out), 0o644)
}

type ListCmd struct{}

func (c *ListCmd) Run(a *app, kctx *kong.Context) error {
	log, err := a.logger(false)
	if err != nil {
		return err
	}
	store, err := a.openStore(log)
	if err != nil {
		return err
	}
	docs, err := store.List(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(kctx.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREV\tUPDATED\tTITLE")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", d.ID, d.Rev, d.UpdatedAt.Format(time.DateTime), d.Title)
	}
	return w.Flush()
}

type VersionCmd struct{}

func (c *VersionCmd) Run(kctx *kong.Context) error {
	fmt.Fprintln(kctx.Stdout, "inkwell", inkwell.VersionTag())
	return nil
}

// decode reads raw JSON content from .json files and plain text otherwise.
func decode(name string, data []byte) (*content.Content, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return content.Unmarshal(data)
	}
	return content.FromText(strings.TrimSuffix(string(data), "\n")), nil
}

func encode(format string, doc *content.Content) (string, error) {
	switch format {
	case "md":
		return export.Markdown(doc)
	case "html":
		return export.HTML(doc)
	case "raw":
		data, err := doc.MarshalJSON()
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
