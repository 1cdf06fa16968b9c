package domain

// Tool is a cataloged external resource: a named link with a short
// description, grouped under a category.
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	CategoryID  string `json:"categoryId"`
}
