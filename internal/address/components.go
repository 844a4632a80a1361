package address

// Component is one semantic piece of a parsed address.
type Component struct {
	ComponentType     string
	Text              string
	LanguageCode      string
	ConfirmationLevel ConfirmationLevel
	Inferred          bool
	SpellCorrected    bool
	Replaced          bool
	Unexpected        bool
}

// ComponentTable indexes components by component type.
type ComponentTable map[string]Component

// Lookup returns the component for a type and whether it was present.
func (t ComponentTable) Lookup(componentType string) (Component, bool) {
	c, ok := t[componentType]
	return c, ok
}

// ExtractComponents flattens the addressComponents list into a table and
// returns the number of distinct component types.
//
// The service does not promise unique component types. When a type
// repeats, the last occurrence in the list wins.
func ExtractComponents(raw []RawComponent) (ComponentTable, int) {
	table := make(ComponentTable, len(raw))
	for _, rc := range raw {
		table[rc.ComponentType] = Component{
			ComponentType:     rc.ComponentType,
			Text:              rc.ComponentName.Text,
			LanguageCode:      rc.ComponentName.LanguageCode,
			ConfirmationLevel: rc.ConfirmationLevel,
			Inferred:          rc.Inferred,
			SpellCorrected:    rc.SpellCorrected,
			Replaced:          rc.Replaced,
			Unexpected:        rc.Unexpected,
		}
	}
	return table, len(table)
}
