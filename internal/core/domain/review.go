package domain

// Review is a single customer review, read-only, sourced from the
// review corpus and matched by exact product ID.
type Review struct {
	// Rating is the review's star score, or unknown.
	Rating Rating `json:"rating"`

	// Title is the review headline.
	Title string `json:"title"`

	// Text is the review body.
	Text string `json:"text"`
}
