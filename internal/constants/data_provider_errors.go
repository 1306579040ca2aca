package constants

// Provider error codes attached to supabase.ProviderError and wheel provider errors
const (
	ErrCodeInvalidAPIKey  = "INVALID_API_KEY"
	ErrCodeNetworkError   = "NETWORK_ERROR"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeNotFound       = "RESOURCE_NOT_FOUND"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeDecodeFailed   = "DECODE_FAILED"
	ErrCodeNoRows         = "NO_ROWS"
	ErrCodeMultipleRows   = "MULTIPLE_ROWS"
	ErrCodeProviderFailed = "PROVIDER_FAILED"
)

// DataProviderErrorMessages holds human-readable fallbacks used when the provider body has no message
var DataProviderErrorMessages = map[string]string{
	ErrCodeInvalidAPIKey:  "Provider rejected the API key",
	ErrCodeNetworkError:   "Network error while contacting provider",
	ErrCodeRateLimited:    "Provider rate limit exceeded",
	ErrCodeNotFound:       "Resource not found",
	ErrCodeBadRequest:     "Provider rejected the request",
	ErrCodeDecodeFailed:   "Failed to decode provider response",
	ErrCodeNoRows:         "No rows returned",
	ErrCodeMultipleRows:   "Multiple rows returned where one was expected",
	ErrCodeProviderFailed: "Provider request failed",
}

// GetErrorMessage returns the fallback message for code
func GetErrorMessage(code string) string {
	if msg, ok := DataProviderErrorMessages[code]; ok {
		return msg
	}
	return "Unknown provider error"
}
