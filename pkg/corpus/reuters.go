package corpus

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// reutersBody matches the article text of one Reuters-21578 story. The
	// trailing " Reuter &#3;" signature is left out of the capture.
	reutersBody = regexp.MustCompile(`(?i)<BODY>(.*?) Reuter &#3;</BODY>`)
	// sentenceSplit splits article text on a period followed by spaces.
	sentenceSplit = regexp.MustCompile(`\. +`)
	// plainSentence accepts sentences made only of letters, commas and spaces.
	plainSentence = regexp.MustCompile(`^[a-z, ]+$`)
)

// ExtractReuters reads one Reuters-21578 SGML file and returns the sentences
// of its article bodies, one per element, ready to be used as corpus lines.
// Sentences holding anything but letters, commas and spaces (digits, quotes,
// abbreviations) are dropped, which discards most of them.
func ExtractReuters(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read reuters file: %w", err)
	}
	contents := strings.ReplaceAll(string(data), "\n", " ")

	var sentences []string
	for _, match := range reutersBody.FindAllStringSubmatch(contents, -1) {
		for _, sentence := range sentenceSplit.Split(match[1], -1) {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" || !plainSentence.MatchString(strings.ToLower(sentence)) {
				continue
			}
			sentences = append(sentences, sentence)
		}
	}
	return sentences, nil
}
