package usecase

import (
	"context"

	"readenvy/internal/modules/export/dto"
	exportin "readenvy/internal/modules/export/port/in"
	"readenvy/internal/modules/export/service"
)

type Interactor struct {
	svc *service.ExportService
}

func NewInteractor(svc *service.ExportService) exportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ExportVault(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	res, err := i.svc.ExportVault(ctx, input.Dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	out := dto.ExportOutput{Dir: res.Dir, Dashboard: res.Dashboard, Books: make([]dto.NoteOutput, 0, len(res.Books))}
	for _, n := range res.Books {
		out.Books = append(out.Books, dto.NoteOutput{BookID: n.BookID, Path: n.Path})
	}
	return out, nil
}
