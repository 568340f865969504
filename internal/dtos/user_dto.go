package dtos

type UpdateProfileRequest struct {
	Industry   string   `json:"industry" binding:"required"`
	Experience int      `json:"experience"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills"`
}

// SyncUserRequest mirrors the profile fields the auth layer knows about;
// everything is optional because a bare sync after sign-in is valid.
type SyncUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}
