package inject

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	// boundaryProbability is the chance of inserting a character after the
	// whitespace run separating two words.
	boundaryProbability = 0.60
	// insideWordProbability is the chance of inserting a character at a
	// random interior offset of a word longer than minWordRunes.
	insideWordProbability = 0.30
	// minWordRunes is the length a word must exceed before it becomes a
	// candidate for interior insertion.
	minWordRunes = 4
)

// Options selects which invisible characters the injector may insert.
type Options struct {
	// ZWSP enables Zero-Width Space (U+200B).
	ZWSP bool
	// ZWNJ enables Zero-Width Non-Joiner (U+200C).
	ZWNJ bool
	// BOM enables Byte Order Mark (U+FEFF).
	BOM bool
	// InvisibleSeparator enables Invisible Separator (U+2063).
	InvisibleSeparator bool
}

// candidates returns the enabled characters in a fixed order.
func (o Options) candidates() []rune {
	var list []rune
	if o.ZWSP {
		list = append(list, '​')
	}
	if o.ZWNJ {
		list = append(list, '‌')
	}
	if o.BOM {
		list = append(list, '\uFEFF')
	}
	if o.InvisibleSeparator {
		list = append(list, '⁣')
	}
	return list
}

// Injector inserts invisible characters into text at random positions.
// An Injector owns its random source and must not be shared between
// goroutines.
type Injector struct {
	candidates []rune
	rng        *rand.Rand
}

// Option configures an Injector.
type Option func(*Injector)

// WithCharacters replaces the candidate set. With no enabled character,
// Inject returns its input unchanged.
func WithCharacters(o Options) Option {
	return func(i *Injector) {
		i.candidates = o.candidates()
	}
}

// WithSeed makes the injector deterministic.
func WithSeed(seed int64) Option {
	return func(i *Injector) {
		i.rng = rand.New(rand.NewSource(seed))
	}
}

// NewInjector creates an Injector. All four candidate characters are
// enabled by default and the random source is time-seeded.
func NewInjector(opts ...Option) *Injector {
	i := &Injector{
		candidates: Options{ZWSP: true, ZWNJ: true, BOM: true, InvisibleSeparator: true}.candidates(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inject inserts randomly chosen enabled characters into text and returns
// the result together with the number of insertions. Insertion points are
// the boundaries after whitespace runs separating two words and random
// interior offsets of words longer than four runes. Leading and trailing
// whitespace never receives insertions.
func (i *Injector) Inject(text string) (string, int) {
	if len(i.candidates) == 0 || text == "" {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))

	count := 0
	seenWord := false
	pendingBoundary := false

	for _, tok := range splitTokens(text) {
		if tok.space {
			b.WriteString(tok.text)
			pendingBoundary = seenWord
			continue
		}
		if pendingBoundary && i.rng.Float64() < boundaryProbability {
			b.WriteRune(i.pick())
			count++
		}
		pendingBoundary = false
		seenWord = true
		b.WriteString(i.intoWord(tok.text, &count))
	}

	return b.String(), count
}

// intoWord returns word with at most one character inserted at a random
// interior offset.
func (i *Injector) intoWord(word string, count *int) string {
	runes := []rune(word)
	if len(runes) <= minWordRunes || i.rng.Float64() >= insideWordProbability {
		return word
	}

	offset := 1 + i.rng.Intn(len(runes)-1)
	*count++

	var b strings.Builder
	b.Grow(len(word) + 3)
	b.WriteString(string(runes[:offset]))
	b.WriteRune(i.pick())
	b.WriteString(string(runes[offset:]))
	return b.String()
}

func (i *Injector) pick() rune {
	return i.candidates[i.rng.Intn(len(i.candidates))]
}

// token is a maximal run of either whitespace or non-whitespace.
type token struct {
	text  string
	space bool
}

// splitTokens partitions text into alternating word and whitespace runs.
func splitTokens(text string) []token {
	var tokens []token

	start := 0
	inSpace := false
	for i, r := range text {
		if i == 0 {
			inSpace = unicode.IsSpace(r)
			continue
		}
		if unicode.IsSpace(r) != inSpace {
			tokens = append(tokens, token{text: text[start:i], space: inSpace})
			start = i
			inSpace = !inSpace
		}
	}
	if start < len(text) {
		tokens = append(tokens, token{text: text[start:], space: inSpace})
	}

	return tokens
}
