package models

// Photo — одна фотография в выдаче API списка.
type Photo struct {
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl"`
}

// UserPhotos — ответ /api/user-photos/{userName}.
// Форма повторяет то, что ждут клиенты: success и поля на верхнем уровне.
type UserPhotos struct {
	Success    bool    `json:"success"`
	UserName   string  `json:"userName"`
	PhotoCount int     `json:"photoCount"`
	Photos     []Photo `json:"photos"`
}
