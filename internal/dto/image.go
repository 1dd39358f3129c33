package dto

type ImageUploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
