package dto

import (
	"time"

	authentity "microblog/internal/feature/auth/domain/entity"
	postsdto "microblog/internal/feature/posts/transport/http/dto"
)

// ProfileRes is the public profile view returned by GET /profile/:username.
type ProfileRes struct {
	Username  string            `json:"username"`
	Bio       string            `json:"bio"`
	Location  string            `json:"location"`
	AvatarURL string            `json:"avatar_url"`
	Posts     []postsdto.PostRes `json:"posts"`
}

// AccountRes is the authenticated user's own account view.
type AccountRes struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Birthdate string    `json:"birthdate,omitempty"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountResFrom maps a user entity to its account view.
func AccountResFrom(u *authentity.User) AccountRes {
	res := AccountRes{
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		Location:  u.Location,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
	if u.Birthdate != nil {
		res.Birthdate = u.Birthdate.Format("2006-01-02")
	}
	return res
}
