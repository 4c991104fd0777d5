/*
Package corpus provides sources of training sentences for the markov package.

Store keeps raw corpus sentences in a SQLite database, grouped by source name,
so that a model can be rebuilt from any mix of previously ingested text. Only
the sentences are stored; trained models always live in memory.

ExtractReuters pulls plain sentences out of the Reuters-21578 SGML files.
*/
package corpus
