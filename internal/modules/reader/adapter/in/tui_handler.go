package in

import (
	"context"

	"readenvy/internal/modules/reader/dto"
	readerin "readenvy/internal/modules/reader/port/in"
)

type TUIHandler struct {
	usecase readerin.Usecase
}

func NewTUIHandler(usecase readerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Open(ctx context.Context, bookID string, page int) (dto.ViewOutput, error) {
	return h.usecase.Open(ctx, dto.OpenInput{BookID: bookID, Page: page})
}

// Turn renders page and schedules the progress write.
func (h TUIHandler) Turn(ctx context.Context, bookID string, page int) (dto.ViewOutput, error) {
	out, err := h.usecase.Open(ctx, dto.OpenInput{BookID: bookID, Page: page})
	if err != nil {
		return dto.ViewOutput{}, err
	}
	h.usecase.PageChanged(bookID, out.Page)
	return out, nil
}

func (h TUIHandler) Close(ctx context.Context, bookID string) error {
	return h.usecase.Close(ctx, bookID)
}

func (h TUIHandler) Quit(ctx context.Context) error {
	return h.usecase.CloseAll(ctx)
}

func (h TUIHandler) OnCommit(fn func(dto.CommitOutput)) {
	h.usecase.OnCommit(fn)
}
