package model

// User roles. The single administrative account carries RoleAdmin and
// authenticates through the same hashed-credential path as everyone else.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Medicine statuses.
const (
	StatusPending = "Pending"
	StatusTaken   = "Taken"
)

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
	Role     string `json:"role" gorm:"not null;default:user"`

	Medicines []Medicine `json:"-" gorm:"foreignKey:UserId"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Medicine struct {
	Id     int `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId int `json:"-" gorm:"index;not null"`

	Name      string `json:"name" form:"name"`
	Dosage    string `json:"dosage" form:"dosage"`
	Time      string `json:"time" form:"time"`        // canonical "HH:MM"
	StartDate string `json:"startDate" form:"start"`  // canonical "YYYY-MM-DD"
	EndDate   string `json:"endDate" form:"end"`      // canonical "YYYY-MM-DD"
	Status    string `json:"status" form:"status" gorm:"default:Pending"`
}
