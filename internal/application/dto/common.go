package dto

// ErrorResponse je tělo chybové HTTP odpovědi.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout je formát datumových polí v requestech i odpovědích.
const DateLayout = "2006-01-02"
