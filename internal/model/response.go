package model

// APIError is the uniform error body: {"error":{"code","message"}}.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// Meta describes pagination of a listing response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page wraps a paginated collection.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
