package department

type Filter struct {
	Page    *int
	Size    *int
	Keyword *string
}

type CreateRequest struct {
	DepartmentName string `json:"DepartmentName" form:"DepartmentName"`
}

type UpdateRequest struct {
	DepartmentName string `json:"DepartmentName" form:"DepartmentName"`
}

type DeleteResponse struct {
	DepartmentID int64  `json:"DepartmentID"`
	Message      string `json:"message"`
}
