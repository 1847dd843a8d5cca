package models

// Profile holds per-user presentation data, currently just the profile
// picture. Exactly one profile exists per user once the user has registered
// or fetched their profile; it is never removed while the user exists.
type Profile struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	// ProfilePic is a path relative to the media directory, empty when the
	// user has not uploaded a picture.
	ProfilePic string `json:"-"`
}
