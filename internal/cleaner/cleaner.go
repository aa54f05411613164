package cleaner

// Cleaner applies the ordered cleaning steps to text.
type Cleaner struct {
	stripHTML     bool
	fixHomoglyphs bool
	normalize     bool
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithStripHTML enables naive HTML tag removal and entity decoding as the
// first step.
func WithStripHTML(strip bool) Option {
	return func(c *Cleaner) {
		c.stripHTML = strip
	}
}

// WithFixHomoglyphs enables folding of lookalike characters to their ASCII
// equivalents after normalization.
func WithFixHomoglyphs(fix bool) Option {
	return func(c *Cleaner) {
		c.fixHomoglyphs = fix
	}
}

// WithNormalize controls the NFC normalization step. It is on by default.
func WithNormalize(normalize bool) Option {
	return func(c *Cleaner) {
		c.normalize = normalize
	}
}

// NewCleaner creates a Cleaner. Without options, cleaning strips hidden
// characters, normalizes to NFC, and tidies whitespace; HTML stripping and
// homoglyph folding stay off.
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{normalize: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// step is one named transformation in the cleaning sequence.
type step struct {
	name  string
	apply func(string) string
}

// steps returns the transformation sequence for the configured options.
func (c *Cleaner) steps() []step {
	s := make([]step, 0, 7)
	if c.stripHTML {
		s = append(s, step{name: "strip-html", apply: stripHTML})
	}
	s = append(s,
		step{name: "strip-hidden", apply: stripHidden},
		step{name: "strip-supplementary", apply: stripSupplementary},
	)
	if c.normalize {
		s = append(s, step{name: "normalize", apply: normalizeNFC})
	}
	if c.fixHomoglyphs {
		s = append(s, step{name: "fix-homoglyphs", apply: foldHomoglyphs})
	}
	s = append(s,
		step{name: "trim-trailing", apply: trimTrailing},
		step{name: "collapse-spaces", apply: collapseSpaces},
	)
	return s
}

// Clean runs the configured steps in order, each consuming the previous
// step's output, and returns the sanitized text. The output is always valid
// UTF-8; ill-formed input sequences become U+FFFD.
func (c *Cleaner) Clean(text string) string {
	for _, s := range c.steps() {
		text = s.apply(text)
	}
	return text
}

// StepTrace records the effect of one cleaning step.
type StepTrace struct {
	// Name is the step name, e.g. "strip-hidden".
	Name string

	// Before and After are the text lengths in runes around the step.
	Before int
	After  int
}

// CleanWithTrace runs Clean and additionally reports the per-step rune
// counts, for verbose output.
func (c *Cleaner) CleanWithTrace(text string) (string, []StepTrace) {
	steps := c.steps()
	traces := make([]StepTrace, 0, len(steps))

	for _, s := range steps {
		before := runeLen(text)
		text = s.apply(text)
		traces = append(traces, StepTrace{Name: s.name, Before: before, After: runeLen(text)})
	}
	return text, traces
}
