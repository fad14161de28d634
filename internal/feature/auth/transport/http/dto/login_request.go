package dto

// LoginReq represents the request body for the /login endpoint.
// Identifier accepts either an email address or a username.
type LoginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Remember   bool   `json:"remember"`
}
