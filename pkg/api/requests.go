package api

// HomeworkRequest is the inbound payload for a homework-help dispatch.
//
// StudyContent and Prompt are pointers so the binding layer can require the
// keys to be present while still accepting empty strings, which is a valid
// request shape. APIChoice is a closed enumeration; anything outside of it is
// rejected before dispatch.
type HomeworkRequest struct {
	StudyContent *string `json:"study_content" binding:"required"`
	Prompt       *string `json:"prompt" binding:"required"`
	APIChoice    string  `json:"api_choice" binding:"required,oneof=gemini llama"`
}

// Study returns the study content, tolerating a nil pointer.
func (r *HomeworkRequest) Study() string {
	if r.StudyContent == nil {
		return ""
	}
	return *r.StudyContent
}

// UserPrompt returns the prompt, tolerating a nil pointer.
func (r *HomeworkRequest) UserPrompt() string {
	if r.Prompt == nil {
		return ""
	}
	return *r.Prompt
}

// LoginRequest carries the fixed-credential login pair.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
