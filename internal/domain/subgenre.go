package domain

// Subgenre is a named genre concept as recorded on the sheet. The first
// entry of Names is the primary name and doubles as the storage key; the
// rest are alternative names (e.g. "DnB" for Drum & Bass).
type Subgenre struct {
	Names    []string `json:"names"`
	Category string   `json:"category"`
	Origins  []string `json:"origins"`
	Children []string `json:"children"`

	// Hex colors as used on the sheet. Empty means the color is inherited
	// from the category.
	TextColor       string `json:"textColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`

	Description string `json:"description,omitempty"`
}

// PrimaryName returns the canonical name of the subgenre.
func (s *Subgenre) PrimaryName() string {
	if len(s.Names) == 0 {
		return ""
	}
	return s.Names[0]
}

// IsCategory reports whether the subgenre is its own category, i.e. it is a
// top-level genre that other subgenres inherit colors from.
func (s *Subgenre) IsCategory() bool {
	for _, name := range s.Names {
		if name == s.Category {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Resolvers that rewrite names must never touch
// the stored record, which may be shared through the cache.
func (s *Subgenre) Clone() *Subgenre {
	clone := *s
	clone.Names = append([]string(nil), s.Names...)
	clone.Origins = append([]string(nil), s.Origins...)
	clone.Children = append([]string(nil), s.Children...)
	return &clone
}

// Element is a single node of a resolved subgenre tree: a *Subgenre, an
// Operator or a *SubgenreGroup. The set is closed; consumers discriminate
// with a type switch.
type Element interface {
	element()
}

func (*Subgenre) element()      {}
func (Operator) element()       {}
func (*SubgenreGroup) element() {}

// SubgenreGroup is a recursive, ordered group of elements, mirroring a
// parenthesized sub-expression of the sheet's genre notation.
type SubgenreGroup struct {
	Elements []Element
}
