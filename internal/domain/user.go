package domain

// Имена ролей, хранимые в таблице roles.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"

	// RoleUserID — роль, назначаемая при регистрации.
	RoleUserID int64 = 2
)

// User представляет учетную запись пользователя,
// соответствует таблице users в бд. Login не меняется после создания.
type User struct {
	ID       int64  `json:"id" db:"id" gorm:"primaryKey"`
	Login    string `json:"login" db:"login"`
	Password string `json:"-" db:"password"`
	Mail     string `json:"mail" db:"mail"`
	RoleID   int64  `json:"role_id" db:"role_id"`
}

func (User) TableName() string {
	return "users"
}

// Role соответствует таблице roles.
type Role struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// Userdata хранит имя и фамилию пользователя (1:1 с User).
type Userdata struct {
	ID      int64  `json:"id" db:"id" gorm:"primaryKey"`
	UserID  int64  `json:"user_id" db:"user_id"`
	Name    string `json:"name" db:"name"`
	Surname string `json:"surname" db:"surname"`
}

func (Userdata) TableName() string {
	return "userdata"
}

// Profile — пользователь вместе с его userdata.
type Profile struct {
	ID      int64  `json:"id" db:"id"`
	Login   string `json:"login" db:"login"`
	Mail    string `json:"mail" db:"mail"`
	Name    string `json:"name" db:"name"`
	Surname string `json:"surname" db:"surname"`
}

// Credentials — данные для проверки входа.
type Credentials struct {
	ID       int64
	Login    string
	Password string
	Roles    []string
}

// Viewer описывает автора запроса. Нулевое значение — аноним.
type Viewer struct {
	UserID int64
	Role   string
}

func (v Viewer) IsLogged() bool {
	return v.UserID > 0
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// CanManage сообщает, может ли viewer изменять запись владельца ownerID.
func (v Viewer) CanManage(ownerID int64) bool {
	return v.IsLogged() && (v.UserID == ownerID || v.IsAdmin())
}
