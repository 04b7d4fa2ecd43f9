package content

// Selection is an anchor/focus pair of block positions.
//
// Backward reports whether the focus precedes the anchor in document order;
// Content.Select computes it. Selection values are comparable.
type Selection struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
	Backward     bool
	Focused      bool
}

// Collapsed returns a caret selection at (key, offset).
func Collapsed(key string, offset int) Selection {
	return Selection{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
		Focused:      true,
	}
}

func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

func (s Selection) StartKey() string {
	if s.Backward {
		return s.FocusKey
	}
	return s.AnchorKey
}

func (s Selection) StartOffset() int {
	if s.Backward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

func (s Selection) EndKey() string {
	if s.Backward {
		return s.AnchorKey
	}
	return s.FocusKey
}

func (s Selection) EndOffset() int {
	if s.Backward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// CollapseToStart returns a caret at the selection start.
func (s Selection) CollapseToStart() Selection {
	c := Collapsed(s.StartKey(), s.StartOffset())
	c.Focused = s.Focused
	return c
}

// CollapseToEnd returns a caret at the selection end.
func (s Selection) CollapseToEnd() Selection {
	c := Collapsed(s.EndKey(), s.EndOffset())
	c.Focused = s.Focused
	return c
}
