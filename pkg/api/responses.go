package api

// HomeworkResponse is the outbound payload for a successful dispatch.
// ModelUsed always echoes the api_choice of the request that produced it.
type HomeworkResponse struct {
	Output    string `json:"output"`
	ModelUsed string `json:"model_used"`
}

// LoginResponse mirrors the login payload the frontend expects.
type LoginResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
