package model

// User is the minimal account profile managed by the admin screens.
type User struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	Occupation  string `json:"occupation"`
	Nickname    string `json:"nickname"`
	BirthDate   string `json:"bod"`
	IsActive    bool   `json:"isActive"`
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	UserName    *string `json:"userName,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`
	Nickname    *string `json:"nickname,omitempty"`
	BirthDate   *string `json:"bod,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
