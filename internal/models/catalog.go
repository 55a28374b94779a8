package models

// Category — узел дерева категорий услуг. Корневые узлы — группы,
// листья — конкретные услуги с ключом для подбора.
type Category struct {
	ID       int64   `db:"id" json:"id"`
	ParentID *int64  `db:"parent_id" json:"parent_id,omitempty"`
	Key      string  `db:"key_field" json:"key"`
	ShortKey *string `db:"short_key" json:"short_key,omitempty"`
}

// CategoryNode — категория с числом дочерних узлов для навигации.
type CategoryNode struct {
	Category
	ChildCount int `db:"child_count" json:"child_count"`
}

// District — район города. Список фиксированный, порядка десяти значений.
type District struct {
	ID  int64  `db:"id" json:"id"`
	Key string `db:"key_field" json:"key"`
}
