package common

import "strings"

// SelectAs формирует список колонок таблицы с алиасом.
// При непустом prefix каждая колонка получает имя вида "prefix.column",
// которое sqlx раскладывает во вложенную структуру с тегом db:"prefix".
func SelectAs(alias, prefix string, columns []string) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		if prefix == "" {
			parts = append(parts, alias+"."+col)
			continue
		}
		parts = append(parts, alias+"."+col+` AS "`+prefix+col+`"`)
	}
	return strings.Join(parts, ", ")
}
