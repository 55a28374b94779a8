package models

// ReputationCriterion — пункт фиксированного чек-листа репутации.
// RoleClient=true — критерии, которыми клиент оценивает мастера,
// false — которыми мастер оценивает клиента.
type ReputationCriterion struct {
	ID         int64  `db:"id" json:"id"`
	CodeKey    string `db:"code_key" json:"code_key"`
	GroupKey   string `db:"group_key" json:"group_key"`
	RoleClient bool   `db:"role_client" json:"role_client"`
}

// CriterionScore — доля заказов, в которых отмечен критерий.
// Процент считается от числа различных проголосовавших заказов
// направления, а не от числа голосов.
type CriterionScore struct {
	Percent float64 `json:"percent"`
	Count   int     `json:"count"`
}

// ReputationStats — агрегат одного направления: знаменатель и разбивка
// по всем критериям направления. Критерии без голосов присутствуют с
// нулями, наличие ключа не означает ненулевой счётчик.
type ReputationStats struct {
	Total int                       `json:"total"`
	Stats map[string]CriterionScore `json:"stats"`
}

// UserReputation — репутация пользователя в обеих ролях.
type UserReputation struct {
	AsMaster ReputationStats `json:"as_master"`
	AsClient ReputationStats `json:"as_client"`
}

// CriterionCount — строка агрегирующего запроса: критерий и число
// заказов, в которых он отмечен.
type CriterionCount struct {
	CodeKey string `db:"code_key"`
	Count   int    `db:"count"`
}
