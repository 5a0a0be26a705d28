package dto

type GenerateRequest struct {
	Message string `json:"message" validate:"required"`
	Model   string `json:"model,omitempty"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

type ListModelsResponse struct {
	Models []string `json:"models"`
}
