package markov

// ModelStats holds aggregated statistics for a single model.
type ModelStats struct {
	Predecessors   int `json:"predecessors"`    // The number of distinct predecessor atoms.
	TotalChains    int `json:"total_chains"`    // The number of unique predecessor->successor links.
	TotalFrequency int `json:"total_frequency"` // The sum of all link counts; the total number of trained transitions.
	CommaLinks     int `json:"comma_links"`     // Links whose successor is the comma marker.
	BreakLinks     int `json:"break_links"`     // Links whose successor is the sentence break.
	Vocabulary     int `json:"vocabulary"`      // The number of distinct words seen as predecessor or successor.
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{Predecessors: len(m.keys)}
	vocab := make(map[string]struct{}, len(m.keys))

	for _, k := range m.keys {
		vocab[k.Text] = struct{}{}
		t := m.tables[k]
		stats.TotalChains += t.Len()
		stats.TotalFrequency += t.Total()
		for _, e := range t.entries {
			switch e.Next.Kind {
			case KindComma:
				stats.CommaLinks++
			case KindSentenceBreak:
				stats.BreakLinks++
			default:
				vocab[e.Next.Text] = struct{}{}
			}
		}
	}
	stats.Vocabulary = len(vocab)
	return stats
}
