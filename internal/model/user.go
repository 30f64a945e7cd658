package model

// User is one record in the users data file. Field names match the persisted
// JSON layout, which predates this server and must keep round-tripping.
type User struct {
	Email        string `json:"email"`
	Password     string `json:"pass"`
	Name         string `json:"name"`
	EmailChanged bool   `json:"email_changed"`
	NameChanged  bool   `json:"name_changed"`
	Code         string `json:"code"`
}
