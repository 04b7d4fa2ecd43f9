package editor

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/content"
)

// DefaultLinkType is the entity type used for links when Config.LinkType is
// empty.
const DefaultLinkType = "LINK"

// Clipboard is the host clipboard used by copy, cut and paste. Read and
// write errors are swallowed.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// ScrollPolicy decides whether the mouse wheel may scroll the viewport away
// from the cursor row.
type ScrollPolicy int

const (
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly ignores the wheel; only cursor moves scroll.
	ScrollFollowCursorOnly
)

// Config configures the editor Model.
type Config struct {
	// Initial document. Content takes precedence over Text.
	Text    string
	Content *content.Content

	// Forwarded to state.Options.
	HistoryLimit int

	// Rendering options.
	Style        Style
	ShowStatus   bool
	ScrollPolicy ScrollPolicy

	// KeyMap defaults to DefaultKeyMap() when left zero.
	KeyMap KeyMap

	// ExclusiveStyles toggle like radio buttons: turning one on clears the
	// others. Defaults to superscript/subscript; set an empty non-nil slice to
	// disable.
	ExclusiveStyles []string

	// LinkType is the entity type created by the link prompt.
	LinkType string

	ReadOnly  bool
	Clipboard Clipboard

	// OnChange is called after every state change, including selection moves.
	OnChange func(ChangeEvent)

	// Logger receives debug output from the link controller. Default: no-op.
	Logger *zap.SugaredLogger
}

func (cfg Config) withDefaults() Config {
	if len(cfg.KeyMap.Left.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.ExclusiveStyles == nil {
		cfg.ExclusiveStyles = []string{content.StyleSuperscript, content.StyleSubscript}
	}
	if cfg.LinkType == "" {
		cfg.LinkType = DefaultLinkType
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return cfg
}
