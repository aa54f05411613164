package config

// Profile holds one named set of scanning and cleaning options from the
// configuration file. Boolean fields are pointers so a key that is absent
// from the YAML falls through to the defaults rather than forcing false.
type Profile struct {
	// IncludeFormatting makes the detector flag tab, line feed, and
	// carriage return.
	IncludeFormatting *bool `yaml:"include_formatting,omitempty"`

	// StripHTML enables HTML tag removal and entity decoding.
	StripHTML *bool `yaml:"strip_html,omitempty"`

	// FixHomoglyphs enables look-alike folding during cleaning.
	FixHomoglyphs *bool `yaml:"fix_homoglyphs,omitempty"`

	// Normalize enables NFC normalization during cleaning.
	Normalize *bool `yaml:"normalize,omitempty"`

	// Format overrides the report format for this profile.
	Format string `yaml:"format,omitempty"`
}

// File represents the structure of the .tracescleaner configuration file.
type File struct {
	// Defaults contains the profile applied to every run unless overridden
	// by a named profile.
	Defaults Profile `yaml:"defaults,omitempty"`

	// Profiles maps profile names to their option sets. Typical names are
	// task-oriented, such as "paste-check" or "pre-commit".
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// GetProfile returns the named profile merged over the file's defaults.
// An empty name returns the defaults alone. An unknown name returns
// ErrProfileNotFound.
func (cf *File) GetProfile(name string) (Profile, error) {
	result := cf.Defaults

	if name == "" {
		return result, nil
	}

	p, ok := cf.Profiles[name]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}

	if p.IncludeFormatting != nil {
		result.IncludeFormatting = p.IncludeFormatting
	}
	if p.StripHTML != nil {
		result.StripHTML = p.StripHTML
	}
	if p.FixHomoglyphs != nil {
		result.FixHomoglyphs = p.FixHomoglyphs
	}
	if p.Normalize != nil {
		result.Normalize = p.Normalize
	}
	if p.Format != "" {
		result.Format = p.Format
	}

	return result, nil
}
