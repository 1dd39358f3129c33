package dto

type CreateRecipeRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Category    string  `json:"category" binding:"required,max=50"`
	Ingredients string  `json:"ingredients" binding:"required"`
	Steps       string  `json:"steps" binding:"required"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=255"`
	Duration    *int    `json:"duration" binding:"omitempty,min=0"`
	Difficulty  *string `json:"difficulty" binding:"omitempty,max=20"`
	Remark      *string `json:"remark" binding:"omitempty,max=200"`
	IsStarred   int8    `json:"is_starred" binding:"oneof=0 1"`
}

type UpdateRecipeRequest struct {
	Name        Optional[string] `json:"name" binding:"omitempty,min=1,max=50"`
	Category    Optional[string] `json:"category" binding:"omitempty,min=1,max=50"`
	Ingredients Optional[string] `json:"ingredients"`
	Steps       Optional[string] `json:"steps"`
	ImageURL    Optional[string] `json:"image_url" binding:"omitempty,max=255"`
	Duration    Optional[int]    `json:"duration" binding:"omitempty,min=0"`
	Difficulty  Optional[string] `json:"difficulty" binding:"omitempty,max=20"`
	Remark      Optional[string] `json:"remark" binding:"omitempty,max=200"`
	IsStarred   Optional[int8]   `json:"is_starred" binding:"omitempty,oneof=0 1"`
}

func (r *UpdateRecipeRequest) Validate() error {
	return rejectNull(map[string]nullable{
		"name":        r.Name,
		"category":    r.Category,
		"ingredients": r.Ingredients,
		"steps":       r.Steps,
		"is_starred":  r.IsStarred,
	})
}

type RecipeQuery struct {
	Category  string `form:"category" binding:"omitempty,max=50"`
	Keyword   string `form:"keyword" binding:"omitempty,max=100"`
	IsStarred *int8  `form:"is_starred" binding:"omitempty,oneof=0 1"`
}
