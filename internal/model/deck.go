package model

// DeckEntry is one line of a deck list: an image file and how many copies to print.
type DeckEntry struct {
	Path   string `json:"path"`
	Copies int    `json:"copies"`
}

// ExpandDeck repeats each entry's path Copies times, keeping list order.
// Entries with fewer than one copy are dropped.
func ExpandDeck(entries []DeckEntry) []string {
	total := 0
	for _, e := range entries {
		if e.Copies > 0 {
			total += e.Copies
		}
	}
	paths := make([]string, 0, total)
	for _, e := range entries {
		for i := 0; i < e.Copies; i++ {
			paths = append(paths, e.Path)
		}
	}
	return paths
}
