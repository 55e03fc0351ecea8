package dto

// PromptRequest is the body of every prompt endpoint
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// PromptResponse carries the model answer
type PromptResponse struct {
	Text string `json:"text"`
}

type QuestionRequest struct {
	Question string `json:"question"`
}

type DeleteDocumentRequest struct {
	Filename string `json:"filename"`
}
