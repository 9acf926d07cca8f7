package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// MessageResponse cuerpo de éxito sin entidad.
type MessageResponse struct {
	Status  string `json:"status"`
	Payload string `json:"payload"`
}
