package in

import (
	"context"

	"readenvy/internal/modules/export/dto"
	exportin "readenvy/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, dir string) (dto.ExportOutput, error) {
	return h.usecase.ExportVault(ctx, dto.ExportInput{Dir: dir})
}
