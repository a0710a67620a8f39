package listview

// ColumnSpec describes one column of a listing.
type ColumnSpec struct {
	Key      string
	Label    string
	Required bool
}

// Columns tracks which columns are shown.
type Columns struct {
	specs   []ColumnSpec
	index   map[string]int
	visible map[string]bool
}

// NewColumns creates a column set with every column visible.
// Later specs with a duplicate key are ignored.
func NewColumns(specs ...ColumnSpec) *Columns {
	c := &Columns{
		index:   make(map[string]int, len(specs)),
		visible: make(map[string]bool, len(specs)),
	}
	for _, spec := range specs {
		if _, dup := c.index[spec.Key]; dup || spec.Key == "" {
			continue
		}
		c.index[spec.Key] = len(c.specs)
		c.specs = append(c.specs, spec)
		c.visible[spec.Key] = true
	}
	return c
}

// Specs returns every known column in display order.
func (c *Columns) Specs() []ColumnSpec {
	out := make([]ColumnSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Spec returns the spec for key.
func (c *Columns) Spec(key string) (ColumnSpec, bool) {
	i, ok := c.index[key]
	if !ok {
		return ColumnSpec{}, false
	}
	return c.specs[i], true
}

// IsVisible reports whether key is shown.
func (c *Columns) IsVisible(key string) bool {
	return c.visible[key]
}

// Toggle flips the visibility of key and reports whether anything changed.
// Required and unknown columns are left alone.
func (c *Columns) Toggle(key string) bool {
	spec, ok := c.Spec(key)
	if !ok || spec.Required {
		return false
	}
	c.visible[key] = !c.visible[key]
	return true
}

// ShowAll makes every column visible.
func (c *Columns) ShowAll() {
	for _, spec := range c.specs {
		c.visible[spec.Key] = true
	}
}

// Visible returns the shown columns in display order.
func (c *Columns) Visible() []ColumnSpec {
	out := make([]ColumnSpec, 0, len(c.specs))
	for _, spec := range c.specs {
		if c.visible[spec.Key] {
			out = append(out, spec)
		}
	}
	return out
}

// VisibleKeys returns the keys of the shown columns, for persistence.
func (c *Columns) VisibleKeys() []string {
	visible := c.Visible()
	keys := make([]string, len(visible))
	for i, spec := range visible {
		keys[i] = spec.Key
	}
	return keys
}

// Restore applies a persisted visible set. Unknown keys are dropped, required
// columns stay visible and an empty set shows everything. It returns the
// dropped keys.
func (c *Columns) Restore(stored []string) []string {
	if len(stored) == 0 {
		c.ShowAll()
		return nil
	}
	want := make(map[string]bool, len(stored))
	var dropped []string
	for _, key := range stored {
		if _, ok := c.index[key]; !ok {
			dropped = append(dropped, key)
			continue
		}
		want[key] = true
	}
	for _, spec := range c.specs {
		c.visible[spec.Key] = spec.Required || want[spec.Key]
	}
	return dropped
}
