package model

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Username string `json:"username"`
}

// AnalyzeResponse is the body returned by POST /analyze
type AnalyzeResponse struct {
	Topics          []TopicWeight   `json:"topics"`
	Recommendations Recommendations `json:"recommendations"`
}

// InsightsRequest is the body of POST /insights
type InsightsRequest struct {
	Username string `json:"username"`
}

// InsightsResponse is the body returned by POST /insights
type InsightsResponse struct {
	Insights []string `json:"insights"`
}

// ErrorResponse is the JSON error envelope for non-2xx API responses
type ErrorResponse struct {
	Detail string `json:"detail"`
}
