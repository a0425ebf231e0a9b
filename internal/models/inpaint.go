package models

// InpaintRequest is the validated form of a POST /api/inpaint body.
type InpaintRequest struct {
	Prompt   string  `json:"prompt" example:"a red brick wall"`
	Image    string  `json:"image" example:"data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAA..."`
	Mask     string  `json:"mask" example:"data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAA..."`
	Size     string  `json:"size,omitempty" example:"768x768"`
	Strength float64 `json:"strength,omitempty" example:"0.85"`
}

// InferenceInputs is the payload handed to the remote model.
type InferenceInputs struct {
	Prompt    string  `json:"prompt"`
	Image     string  `json:"image"`
	Mask      string  `json:"mask"`
	Strength  float64 `json:"strength"`
	NumSteps  int     `json:"num_steps"`
	Guidance  float64 `json:"guidance"`
	Seed      int64   `json:"seed"`
	ImageSize string  `json:"image_size"`
}

// InferenceResult is whatever the remote model answered with, untouched.
type InferenceResult struct {
	ContentType string
	Body        []byte
}

type InpaintResponse struct {
	Image string `json:"image" example:"data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAA..."`
}

type ErrorResponse struct {
	Error string `json:"error" example:"prompt, image and mask are required"`
}

// UnexpectedResponse is the 502 body. Result echoes the upstream answer and is
// always present, null included.
type UnexpectedResponse struct {
	Error  string `json:"error" example:"unexpected model response"`
	Result any    `json:"result" swaggertype:"object"`
}
