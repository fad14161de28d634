package dto

// RefreshReq represents the request for token refresh and for logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
