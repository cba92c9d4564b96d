package ocr

// Detection фрагмент текста, найденный моделью
type Detection struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence,omitempty"`
}

// response ответ POST /ocr. Raw == nil означает, что поле отсутствует
type response struct {
	Raw *[]Detection `json:"raw"`
}
