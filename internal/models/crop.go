package models

// Crop справочник культур пользователя.
type Crop struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Especie   string `json:"especie"`
	UsuarioID int64  `json:"-"`
}

// CropRequest данные культуры.
type CropRequest struct {
	Nombre  string `json:"nombre" validate:"required,max=100"`
	Especie string `json:"especie" validate:"required,max=100"`
}
