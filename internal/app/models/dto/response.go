package dto

// MessageResponse is the plain acknowledgment returned by mutation endpoints
// that do not echo a resource back.
type MessageResponse struct {
	Message string `json:"message" example:"Drive deleted successfully"`
}

// NewMessageResponse creates a message acknowledgment
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
