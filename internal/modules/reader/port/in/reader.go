package in

import (
	"context"

	"readenvy/internal/modules/reader/dto"
)

type Usecase interface {
	// Open renders one page, keeping the document open for later pages.
	Open(ctx context.Context, input dto.OpenInput) (dto.ViewOutput, error)
	Close(ctx context.Context, bookID string) error
	CloseAll(ctx context.Context) error

	// PageChanged schedules a debounced progress write for the latest page.
	PageChanged(bookID string, page int)
	Flush(bookID string)
	FlushAll()
	Stop()
	OnCommit(fn func(dto.CommitOutput))
}
