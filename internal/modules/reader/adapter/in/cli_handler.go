package in

import (
	"context"

	"readenvy/internal/modules/reader/dto"
	readerin "readenvy/internal/modules/reader/port/in"
)

type CLIHandler struct {
	usecase readerin.Usecase
}

func NewCLIHandler(usecase readerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Page renders one page without recording progress.
func (h CLIHandler) Page(ctx context.Context, bookID string, page int) (dto.ViewOutput, error) {
	out, err := h.usecase.Open(ctx, dto.OpenInput{BookID: bookID, Page: page})
	if err != nil {
		return dto.ViewOutput{}, err
	}
	return out, h.usecase.Close(ctx, bookID)
}
