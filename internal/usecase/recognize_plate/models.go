package recognize_plate

import "io"

// Request модель запроса распознавания
type Request struct {
	Filename string
	Image    io.Reader
}

// Response модель ответа с распознанным номером
type Response struct {
	Plate      string   // Номер: A-Z и 0-9, 8-10 символов
	Candidates []string // Все фрагменты текста, которые вернула модель
}
