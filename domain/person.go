package domain

// Person is a staff or consignor account.
type Person struct {
	ID          string `db:"id" json:"id"`
	NickName    string `db:"nick_name" json:"nick_name"`
	Name        string `db:"name" json:"name"`
	Level       Level  `db:"level" json:"level"`
	Email       string `db:"email" json:"email"`
	Password    string `db:"password" json:"password,omitempty"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	Company     string `db:"company" json:"company"`
	CreatedAt   string `db:"created_at" json:"created_at,omitempty"`
}

// Consignor is a supplier whose goods the shop sells on consignment.
type Consignor struct {
	ID          string `db:"id" json:"id"`
	NickName    string `db:"nick_name" json:"nick_name"`
	Name        string `db:"name" json:"name"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	Company     string `db:"company" json:"company"`
}
