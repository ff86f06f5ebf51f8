package handlers

// SuccessResponse is the body returned for a completed detection.
type SuccessResponse struct {
	Status          string  `json:"status" example:"success"`
	Language        string  `json:"language" example:"Tamil"`
	Classification  string  `json:"classification" example:"AI_GENERATED" enums:"HUMAN,AI_GENERATED"`
	ConfidenceScore float64 `json:"confidenceScore" example:"0.91"`
	Explanation     string  `json:"explanation" example:"Strong synthetic patterns detected (unnatural pitch consistency and robotic speech patterns)"`
}

// ErrorResponse is the uniform envelope for every failure status.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"Invalid API key or malformed request"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status           string   `json:"status" example:"healthy"`
	ModelLoaded      bool     `json:"modelLoaded" example:"true"`
	Detector         string   `json:"detector" example:"onnx"`
	SupportedFormats []string `json:"supportedFormats"`
}
