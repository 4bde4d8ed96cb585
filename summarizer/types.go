package summarizer

// Summary is the structured result the model must return: a short post
// title and an HTML body fragment.
type Summary struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}
