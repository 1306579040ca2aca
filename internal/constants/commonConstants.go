package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk   APIStatus = "ok"
	APIStatusDown APIStatus = "down"

	CachePrefixLoginFailures CachePrefix = "LOGIN_FAIL_"
	CachePrefixLoginBlocked  CachePrefix = "LOGIN_BLOCK_"
)

const TableCouncilAdmins = "council_admins"

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)
