package constants

const (
	MsgUnauthorized        = "Unauthorized"
	MsgInternalServerError = "Internal server error"
	MsgEmailPasswordNeeded = "Email and password are required"
	MsgAdminUserIDsNeeded  = "Admin ID and User ID are required"
	MsgUnknownEmail        = "Unknown"
)

// Superuser gate actions, rendered as "Only superusers can <action> admin accounts".
const (
	ActionCreate = "create"
	ActionDelete = "delete"
	ActionList   = "list"
)

const (
	MsgPasswordRequired  = "Password is required."
	MsgIncorrectPassword = "Incorrect password."
	MsgTooManyAttempts   = "Too many failed attempts. Try again later."
)

const (
	MsgWheelKeyMissing     = "Missing WHEEL_OF_NAMES_API_KEY"
	MsgWheelEntriesMissing = "entries array is required"
	MsgWheelCreateFailed   = "Failed to create wheel"
	MsgWheelNoPath         = "No path in response"
)
