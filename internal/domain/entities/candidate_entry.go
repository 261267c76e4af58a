package entities

// CandidateEntry is an added record together with its parse result.
type CandidateEntry struct {
	Position   int
	Record     string
	Descriptor EntryDescriptor
	Err        error // *MalformedEntryError when the record cannot be parsed
}

// ParseCandidates parses every record without stopping at malformed ones.
func ParseCandidates(records []string, defaultFile string) []CandidateEntry {
	candidates := make([]CandidateEntry, 0, len(records))
	for i, record := range records {
		descriptor, err := ParseEntryDescriptor(record, defaultFile)
		candidates = append(candidates, CandidateEntry{
			Position:   i + 1,
			Record:     record,
			Descriptor: descriptor,
			Err:        err,
		})
	}
	return candidates
}
