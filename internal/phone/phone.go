package phone

import "strings"

// Пакет phone приводит номера телефонов к каноническому виду с кодом страны.
// Канонический номер используется как ключ дедупликации мастеров, поэтому
// нормализация обязана быть детерминированной и идемпотентной.

// Normalize приводит номер к каноническому виду.
// Турецкие локальные/национальные форматы приводятся к +905XXXXXXXXX,
// российские — к +7XXXXXXXXXX. Остальные международные номера получают
// ведущий «+», если его не хватает.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	hasPlus := strings.HasPrefix(raw, "+")
	digits := onlyDigits(raw)
	if digits == "" {
		return ""
	}

	// Турецкие варианты: 5XXXXXXXXX, 05XXXXXXXXX, 905XXXXXXXXX, 0905XXXXXXXXX.
	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "5"):
		return "+90" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "05"):
		return "+90" + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "905"):
		return "+" + digits
	case len(digits) == 13 && strings.HasPrefix(digits, "0905"):
		return "+" + digits[1:]
	}

	// Российские варианты: 7XXXXXXXXXX и локальный 8XXXXXXXXXX.
	if len(digits) == 11 {
		if strings.HasPrefix(digits, "7") {
			return "+" + digits
		}
		if strings.HasPrefix(digits, "8") {
			return "+7" + digits[1:]
		}
	}

	// Прочие международные: длинный номер без ведущего нуля считаем
	// номером с кодом страны, которому забыли поставить «+».
	if !hasPlus && len(digits) >= 10 && !strings.HasPrefix(digits, "0") {
		return "+" + digits
	}
	if hasPlus {
		return "+" + digits
	}

	return digits
}

// IsValid проверяет, похожа ли строка на телефонный номер.
// Для номеров, распознаваемых как турецкие, действует строгая проверка
// 7–15 цифр; для остальных достаточно 5 цифр. Это намеренно нестрогий
// валидатор, а не полная проверка E.164.
func IsValid(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if len(raw) < 5 || len(raw) > 30 {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '(' || r == ')' || r == '-' || r == ' ':
		default:
			return false
		}
	}

	digits := onlyDigits(raw)

	turkish := strings.HasPrefix(raw, "+9") ||
		(!strings.HasPrefix(raw, "+") &&
			(strings.HasPrefix(raw, "5") || strings.HasPrefix(raw, "05") || strings.HasPrefix(raw, "90")))
	if turkish {
		return len(digits) >= 7 && len(digits) <= 15
	}

	return len(digits) >= 5
}

// SearchVariants возвращает представления номера, под которыми он мог быть
// сохранён ранее. Дубликаты турецких номеров ищутся и по старым локальным
// форматам 0XXXXXXXXXX и XXXXXXXXXX.
func SearchVariants(raw string) []string {
	normalized := Normalize(raw)
	if normalized == "" {
		return nil
	}

	variants := []string{normalized}
	if strings.HasPrefix(normalized, "+905") && len(normalized) == 13 {
		local := normalized[3:] // 5XXXXXXXXX
		variants = append(variants, "0"+local, local)
	}
	return variants
}

// onlyDigits выбрасывает из строки всё, кроме цифр.
func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
