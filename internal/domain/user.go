package domain

import "time"

// User is a registered account. Username is unique and immutable after
// registration; the password is only ever held as a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the mutable descriptive fields of an account.
type Profile struct {
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	Region       string
	NationalID   string
	BusinessName string
	Industry     string
	Address      string
}

// PublicUser is the projection safe to return to any caller. The row id and
// password hash never leave the service layer.
type PublicUser struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Region       string `json:"region"`
	NationalID   string `json:"nationalId"`
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	Address      string `json:"address"`
}

// Public returns the public projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		Region:       u.Region,
		NationalID:   u.NationalID,
		BusinessName: u.BusinessName,
		Industry:     u.Industry,
		Address:      u.Address,
	}
}
