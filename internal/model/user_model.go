package model

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}
