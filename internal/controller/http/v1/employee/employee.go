package employee

import (
	"fmt"
	"net/http"
	"reflect"

	"hrpayroll/backend/foundation/web"
	"hrpayroll/backend/internal/repository"
	"hrpayroll/backend/internal/repository/employee"
	"hrpayroll/backend/internal/service"
)

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee}
}

func (uc Controller) filter(c *web.Context) (employee.Filter, error) {
	var filter employee.Filter

	if department, ok := c.GetQueryFunc(reflect.Int64, "department_id").(*int64); ok {
		filter.DepartmentID = department
	}
	if position, ok := c.GetQueryFunc(reflect.Int64, "position_id").(*int64); ok {
		filter.PositionID = position
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if keyword, ok := c.GetQueryFunc(reflect.String, "keyword").(*string); ok {
		filter.Keyword = keyword
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if size, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok {
		filter.Size = size
	}

	return filter, c.ValidQuery()
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

// ByDepartment lists the employees of the department in the path.
func (uc Controller) ByDepartment(c *web.Context) error {
	return uc.byParent(c, func(f *employee.Filter, id int64) { f.DepartmentID = &id })
}

// ByPosition lists the employees holding the position in the path.
func (uc Controller) ByPosition(c *web.Context) error {
	return uc.byParent(c, func(f *employee.Filter, id int64) { f.PositionID = &id })
}

func (uc Controller) byParent(c *web.Context, scope func(*employee.Filter, int64)) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var filter employee.Filter
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if size, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok {
		filter.Size = size
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}
	scope(&filter, id)

	response, err := uc.employee.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if response == nil {
		return c.RespondError(repository.NotFound("Employee", id))
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "FullName"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusCreated)
}

func (uc Controller) Update(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Update(c.Ctx, id, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

// Export downloads every employee matching the list filters as a spreadsheet.
func (uc Controller) Export(c *web.Context) error {
	filter, err := uc.filter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.employee.All(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.EmployeesXLSX(list)
	if err != nil {
		return c.RespondError(err)
	}

	return c.RespondFile("employees.xlsx", service.XLSXContentType, data)
}

func (uc Controller) QRCode(c *web.Context) error {
	id := c.GetParam(reflect.Int64, "id").(int64)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	e, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if e == nil {
		return c.RespondError(repository.NotFound("Employee", id))
	}

	data, err := service.EmployeeQR(*e)
	if err != nil {
		return c.RespondError(err)
	}

	return c.RespondFile(fmt.Sprintf("employee-%d.png", id), service.PNGContentType, data)
}
