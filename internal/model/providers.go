package model

// Effectiveness states how completely character-level cleaning removes a
// provider's known artifacts.
type Effectiveness string

const (
	// EffectivenessFull means every known artifact is a character the
	// cleaner strips or folds.
	EffectivenessFull Effectiveness = "full"

	// EffectivenessPartial means some artifacts are stylistic (word choice,
	// punctuation habits) and survive character-level cleaning.
	EffectivenessPartial Effectiveness = "partial"
)

// AIProviderProfile is reference data about one provider's text artifacts.
// It is purely informational: no detection or cleaning logic consults it.
type AIProviderProfile struct {
	// Name is the stable lookup key, lower-case.
	Name string `json:"name"`

	// DisplayLabel is the provider name as shown to users.
	DisplayLabel string `json:"display_label"`

	// Icon is a single glyph used in rendered tables.
	Icon string `json:"icon"`

	// Techniques lists the artifact classes observed in the provider's
	// output, most common first.
	Techniques []string `json:"techniques"`

	// Effectiveness states how much of that cleaning removes.
	Effectiveness Effectiveness `json:"effectiveness"`

	// Note is a one-line caveat for the rendered table.
	Note string `json:"note"`
}

// providerProfiles lists known providers in display order.
var providerProfiles = []AIProviderProfile{
	{
		Name:         "chatgpt",
		DisplayLabel: "ChatGPT",
		Icon:         "◍",
		Techniques: []string{
			"Narrow no-break spaces (U+202F) between numbers and units",
			"Em dashes and curly quotes in place of ASCII punctuation",
			"Occasional zero-width spaces in long generations",
		},
		Effectiveness: EffectivenessPartial,
		Note:          "Punctuation habits survive cleaning unless homoglyph fixing is enabled.",
	},
	{
		Name:         "claude",
		DisplayLabel: "Claude",
		Icon:         "✳",
		Techniques: []string{
			"Trailing spaces at paragraph ends",
			"Double spaces after sentence-final periods",
		},
		Effectiveness: EffectivenessFull,
		Note:          "Whitespace cleanup removes all known artifacts.",
	},
	{
		Name:         "gemini",
		DisplayLabel: "Gemini",
		Icon:         "✦",
		Techniques: []string{
			"Zero-width joiners inside compound emoji left in plain text",
			"Soft hyphens in long technical terms",
		},
		Effectiveness: EffectivenessFull,
		Note:          "All observed artifacts are strippable characters.",
	},
	{
		Name:         "copilot",
		DisplayLabel: "Copilot",
		Icon:         "▣",
		Techniques: []string{
			"HTML entities pasted from chat transcripts",
			"Non-breaking spaces from web rendering",
		},
		Effectiveness: EffectivenessPartial,
		Note:          "Entity decoding requires the strip-html option.",
	},
	{
		Name:         "grok",
		DisplayLabel: "Grok",
		Icon:         "✕",
		Techniques: []string{
			"Variation selectors attached to plain ASCII",
			"Ideographic spaces in mixed-language output",
		},
		Effectiveness: EffectivenessFull,
		Note:          "All observed artifacts are strippable characters.",
	},
	{
		Name:         "deepseek",
		DisplayLabel: "DeepSeek",
		Icon:         "◈",
		Techniques: []string{
			"Fullwidth punctuation in English prose",
			"Mixed CRLF and LF line endings",
		},
		Effectiveness: EffectivenessPartial,
		Note:          "Fullwidth folding requires homoglyph fixing; line endings are reported, not rewritten.",
	},
}

// Providers returns a copy of the provider profiles in display order.
func Providers() []AIProviderProfile {
	profiles := make([]AIProviderProfile, len(providerProfiles))
	copy(profiles, providerProfiles)
	return profiles
}

// GetProviderProfile returns the profile for the given lookup key.
func GetProviderProfile(name string) (AIProviderProfile, bool) {
	for _, p := range providerProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return AIProviderProfile{}, false
}
