package models

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" mapstructure:"name"`
	Email    string `json:"email" mapstructure:"email"`
	Password string `json:"password" mapstructure:"password"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" mapstructure:"email"`
	Password string `json:"password" mapstructure:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token     string     `json:"token"`
	User      PublicUser `json:"user"`
	ExpiresIn string     `json:"expiresIn"`
}

// ItemRequest is the payload of POST /api/items and PUT /api/items/{id}.
//
// On update every field is optional and only non-empty values overwrite the
// stored item, so the validation tags use omitempty where create and update
// rules coincide; create additionally requires a title.
type ItemRequest struct {
	Title       string     `json:"title" mapstructure:"title" validate:"omitempty,min=3,max=100"`
	Description string     `json:"description" mapstructure:"description" validate:"omitempty,min=10,max=2000"`
	Category    string     `json:"category" mapstructure:"category" validate:"omitempty,item_category"`
	Location    string     `json:"location" mapstructure:"location" validate:"omitempty,max=200"`
	ImageURL    string     `json:"imageUrl" mapstructure:"imageUrl" validate:"omitempty,url"`
	Status      ItemStatus `json:"status" mapstructure:"status" validate:"omitempty,oneof=available pending sold withdrawn"`
}

// ProfileUpdateRequest is the payload of PUT /api/user/profile.
type ProfileUpdateRequest struct {
	Name    string   `json:"name" mapstructure:"name" validate:"omitempty,min=2,max=50"`
	Phone   string   `json:"phone" mapstructure:"phone" validate:"omitempty,max=20"`
	Bio     string   `json:"bio" mapstructure:"bio" validate:"omitempty,max=500"`
	Avatar  string   `json:"avatar" mapstructure:"avatar" validate:"omitempty,url"`
	Address *Address `json:"address" mapstructure:"address"`
}
