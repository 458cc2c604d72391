package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	BaseModel

	Username string `json:"username" gorm:"uniqueIndex"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`

	Role        string `json:"role" gorm:"default:user"`
	IsSuperuser bool   `json:"is_superuser"`

	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
}

// IsModerator reports whether the account carries elevated privileges,
// either via the admin role or the superuser flag.
func (v Account) IsModerator() bool {
	return v.Role == RoleAdmin || v.IsSuperuser
}

// CanManage reports whether the account is allowed to mutate a resource
// owned by the given account id.
func (v Account) CanManage(ownerId uint) bool {
	return v.ID == ownerId || v.IsModerator()
}
