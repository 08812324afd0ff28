package in

import (
	"context"

	"readenvy/internal/modules/export/dto"
)

type Usecase interface {
	ExportVault(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
