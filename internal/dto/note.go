package dto

type CreateNoteRequest struct {
	CategoryPath *string `json:"category_path" binding:"omitempty,max=100"`
	Title        string  `json:"title" binding:"required,max=100"`
	Content      string  `json:"content"`
	ContentType  int8    `json:"content_type" binding:"oneof=0 1"`
}

type UpdateNoteRequest struct {
	CategoryPath Optional[string] `json:"category_path" binding:"omitempty,max=100"`
	Title        Optional[string] `json:"title" binding:"omitempty,min=1,max=100"`
	Content      Optional[string] `json:"content"`
	ContentType  Optional[int8]   `json:"content_type" binding:"omitempty,oneof=0 1"`
}

func (r *UpdateNoteRequest) Validate() error {
	return rejectNull(map[string]nullable{
		"title":        r.Title,
		"content":      r.Content,
		"content_type": r.ContentType,
	})
}

// NoteQuery holds list filters
type NoteQuery struct {
	CategoryPath string `form:"category_path" binding:"omitempty,max=100"`
	Keyword      string `form:"keyword" binding:"omitempty,max=100"`
}
