package domain

// ListingEntry is one parsed line of a generated product listing.
type ListingEntry struct {
	// Position is the 1-based list number as it appeared in the
	// generated text. Positions are unique within a listing but not
	// necessarily contiguous.
	Position int

	// ProductID is the catalogue identifier extracted from the
	// "- ID:" line of the entry.
	ProductID string

	// Title is the product title with formatting residue stripped.
	Title string
}

// Listing is the position -> product relation recovered from a
// generated answer. It is the one piece of state that links a listing
// shown to the user with the follow-up review lookup, so it is passed
// by value through the loop and fully replaced on each new question.
type Listing struct {
	// Entries are in order of appearance in the generated text.
	Entries []ListingEntry
}

// Empty reports whether no entries were parsed.
func (l Listing) Empty() bool { return len(l.Entries) == 0 }

// Len returns the number of parsed entries.
func (l Listing) Len() int { return len(l.Entries) }

// ByPosition returns the entry with the given 1-based position.
func (l Listing) ByPosition(pos int) (ListingEntry, bool) {
	for _, e := range l.Entries {
		if e.Position == pos {
			return e, true
		}
	}
	return ListingEntry{}, false
}
