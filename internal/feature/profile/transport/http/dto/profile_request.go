package dto

// UpdateAccountReq is the request body for PUT /account.
type UpdateAccountReq struct {
	Username  string `json:"username" binding:"required,min=2,max=32"`
	Email     string `json:"email" binding:"required,email"`
	Bio       string `json:"bio" binding:"max=500"`
	Location  string `json:"location" binding:"max=100"`
	Birthdate string `json:"birthdate" binding:"omitempty,datetime=2006-01-02"`
}
