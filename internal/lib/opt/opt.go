// Package opt описывает необязательное поле JSON-запроса, различающее
// три состояния: поле отсутствует, передан null, передано значение.
package opt

import "encoding/json"

// Field значение частичного обновления.
type Field[T any] struct {
	Value T
	Set   bool // поле присутствовало в JSON
	Null  bool // поле было передано как null
}

// Some возвращает заполненное поле.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Null возвращает поле с явным null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Get возвращает значение и признак того, что оно передано и не равно null.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set && !f.Null
}

// UnmarshalJSON вызывается только для присутствующих ключей, в том числе для null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON кодирует отсутствующее и null-поле как null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
