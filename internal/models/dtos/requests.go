package dtos

type CreateAdminReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	CouncilID *string `json:"councilId"`
}

type DeleteAdminReq struct {
	AdminID string `json:"adminId"`
	UserID  string `json:"userId"`
}

// LoginReq keeps Password untyped so a non-string value can be rejected as missing.
type LoginReq struct {
	Password any `json:"password"`
}
