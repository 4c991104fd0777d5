package markov

// AtomKind identifies which case of the Atom variant a value holds.
type AtomKind uint8

const (
	// KindWord is a plain word with its trailing comma stripped.
	KindWord AtomKind = iota
	// KindComma marks that the preceding word was followed by a comma.
	KindComma
	// KindSentenceBreak marks that the preceding word ended its line.
	KindSentenceBreak
)

const (
	// CommaText is the text used for the Comma atom in debug output and exports.
	CommaText = "<COMMA>"
	// SentenceBreakText is the text used for the SentenceBreak atom in debug output and exports.
	SentenceBreakText = "<BREAK>"
)

// Atom is a single unit of the chain. Atoms are plain comparable values, so two
// Word atoms with the same text are equal and hash to the same map key. Only
// words carry text.
type Atom struct {
	Kind AtomKind
	Text string
}

var (
	// Comma is the comma marker atom.
	Comma = Atom{Kind: KindComma}
	// SentenceBreak is the end-of-sentence atom.
	SentenceBreak = Atom{Kind: KindSentenceBreak}
)

// Word returns the word atom for text.
func Word(text string) Atom {
	return Atom{Kind: KindWord, Text: text}
}

// IsWord reports whether a is a word atom.
func (a Atom) IsWord() bool {
	return a.Kind == KindWord
}

// String returns the word text, or the reserved marker text for the
// comma and sentence break atoms.
func (a Atom) String() string {
	switch a.Kind {
	case KindComma:
		return CommaText
	case KindSentenceBreak:
		return SentenceBreakText
	default:
		return a.Text
	}
}
