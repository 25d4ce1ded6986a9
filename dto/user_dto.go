package dto

import "github.com/kathyn262/Waddle/models"

// UserDTO is a Data Transfer Object for user responses
type UserDTO struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ImageURL       string `json:"image_url"`
	HeaderImageURL string `json:"header_image_url"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`
}

func NewUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		ImageURL:       u.ImageURL,
		HeaderImageURL: u.HeaderImageURL,
		Bio:            u.Bio,
		Location:       u.Location,
	}
}

func NewUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = NewUserDTO(u)
	}
	return dtos
}
