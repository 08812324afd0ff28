package dto

type ExportInput struct {
	Dir string
}

type NoteOutput struct {
	BookID string
	Path   string
}

type ExportOutput struct {
	Dir       string
	Books     []NoteOutput
	Dashboard string
}
