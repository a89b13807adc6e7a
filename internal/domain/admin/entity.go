package admin

import "time"

// Admin is a dashboard credential. There is no self-service registration:
// records come from seeding and are changed only by the password utility.
type Admin struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
