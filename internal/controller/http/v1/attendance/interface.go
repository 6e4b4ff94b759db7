package attendance

import (
	"context"

	"hrpayroll/backend/internal/entity"
	"hrpayroll/backend/internal/repository/attendance"
)

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]entity.Attendance, int, error)
	GetDetailById(ctx context.Context, id int64) (*entity.Attendance, error)
	Create(ctx context.Context, request attendance.CreateRequest) (attendance.WriteResponse, error)
	Update(ctx context.Context, id int64, request attendance.UpdateRequest) (attendance.WriteResponse, error)
	Delete(ctx context.Context, id int64) (attendance.DeleteResponse, error)
	Statistics(ctx context.Context, month *string, year *int) (entity.AttendanceStatistics, error)
}
