package models

// JournalQuery фильтр журнала выездов
type JournalQuery struct {
	Registration string // Пустая строка - все номера
	Limit        int    // 0 - значение по умолчанию
}
