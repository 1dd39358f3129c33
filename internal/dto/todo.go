package dto

import "time"

type CreateTodoRequest struct {
	CategoryPath *string    `json:"category_path" binding:"omitempty,max=100"`
	Title        string     `json:"title" binding:"required,max=100"`
	Remark       *string    `json:"remark"`
	Deadline     *time.Time `json:"deadline"`
	Priority     *int8      `json:"priority" binding:"omitempty,oneof=1 2 3"`
	Status       int8       `json:"status" binding:"oneof=0 1"`
	IsStarred    int8       `json:"is_starred" binding:"oneof=0 1"`
}

type UpdateTodoRequest struct {
	CategoryPath Optional[string]    `json:"category_path" binding:"omitempty,max=100"`
	Title        Optional[string]    `json:"title" binding:"omitempty,min=1,max=100"`
	Remark       Optional[string]    `json:"remark"`
	Deadline     Optional[time.Time] `json:"deadline"`
	Priority     Optional[int8]      `json:"priority" binding:"omitempty,oneof=1 2 3"`
	Status       Optional[int8]      `json:"status" binding:"omitempty,oneof=0 1"`
	IsStarred    Optional[int8]      `json:"is_starred" binding:"omitempty,oneof=0 1"`
}

func (r *UpdateTodoRequest) Validate() error {
	return rejectNull(map[string]nullable{
		"title":      r.Title,
		"priority":   r.Priority,
		"status":     r.Status,
		"is_starred": r.IsStarred,
	})
}

// TodoQuery holds list filters. Pointers distinguish "not given" from 0.
type TodoQuery struct {
	CategoryPath string `form:"category_path" binding:"omitempty,max=100"`
	Status       *int8  `form:"status" binding:"omitempty,oneof=0 1"`
	IsStarred    *int8  `form:"is_starred" binding:"omitempty,oneof=0 1"`
	Priority     *int8  `form:"priority" binding:"omitempty,oneof=1 2 3"`
	Q            string `form:"q" binding:"omitempty,max=100"`
}
