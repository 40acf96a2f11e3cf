package dto

type RecommendNotesRequest struct {
	Lesson    string  `json:"lesson"`
	Subject   *string `json:"subject"`
	ClassName *string `json:"className"`
}

type RecommendNotesResponse struct {
	Recommendations []*NoteResponse `json:"recommendations"`
}

type RecommendationErrorResponse struct {
	Error string `json:"error"`
}
