/*
Package markov provides a small, in-memory, first-order Markov chain toolkit
for generating sentences from a line-oriented text corpus.

A corpus is read one sentence per line. Each line is split on whitespace and
turned into transitions between atoms: words, comma markers and sentence
breaks. A comma is recorded as a competing successor of the word it follows,
and generation treats it as a modifier that is attached to the previous word
rather than emitted as a token of its own.

Models are built once and then read by a Generator, which owns a seeded random
source so that output is reproducible for a given seed. A State bundles the two
together for callers that need a single long-lived handle, such as the C
library in cmd/libmarkov.
*/
package markov
