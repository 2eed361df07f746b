package models

// Customer PII fields (Email, Phone, Address) are stored encrypted;
// repositories hand them out decrypted.
type Customer struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`
}
