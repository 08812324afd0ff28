package dto

type OpenInput struct {
	BookID string
	// Page 0 resumes at the saved position.
	Page int
}

type HeadingOutput struct {
	Title string
	Page  int
	Depth int
}

type ViewOutput struct {
	BookID          string
	Title           string
	Author          string
	Page            int
	TotalPages      int
	Text            string
	Percent         int
	Outline         []HeadingOutput
	OutlineMarkdown string
}

type CommitOutput struct {
	BookID          string
	Page            int
	DurationSeconds int
	Percent         int
	Err             error
}
