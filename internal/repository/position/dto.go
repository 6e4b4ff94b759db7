package position

type Filter struct {
	Page    *int
	Size    *int
	Keyword *string
}

type CreateRequest struct {
	PositionName string `json:"PositionName" form:"PositionName"`
}

type UpdateRequest struct {
	PositionName string `json:"PositionName" form:"PositionName"`
}

type DeleteResponse struct {
	PositionID int64  `json:"PositionID"`
	Message    string `json:"message"`
}
