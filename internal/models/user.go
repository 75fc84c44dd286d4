package models

// Credential is one row of the flat credential file.
type Credential struct {
	Username     string
	PasswordHash string
}
