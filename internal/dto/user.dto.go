package dto

import "github.com/BruksfildServices01/team-scheduler/internal/models"

type UserDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Timezone string `json:"timezone"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Name:     u.Name,
		Handle:   u.Handle,
		Timezone: u.Timezone,
	}
}

type SessionDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}
