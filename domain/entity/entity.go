// Package entity 定义动态属性实体（property bag）
//
// 设计原则：
// 1. 实体只承载数据，不承载行为 - 行为由角色（role）在运行时附加
// 2. 读取未设置的字段必须返回“未找到”，不能静默返回零值
// 3. 非并发安全 - 用例在单一调用栈内同步执行
package entity

import (
	"fmt"
	"sort"
)

// IObject 最基础的对象接口，所有实体的根接口
type IObject[T comparable] interface {
	// GetID 返回对象的唯一标识
	GetID() T
}

// Entity 以字符串为标识的可变字段集合
//
// 示例:
//
//	account := entity.New("account/1")
//	account.Set("Balance", banking.Amount(1000))
type Entity struct {
	id   string
	data map[string]any
}

var _ IObject[string] = (*Entity)(nil)

// New 创建实体，id 在实体生命周期内不可变
func New(id string) *Entity {
	return &Entity{
		id:   id,
		data: make(map[string]any),
	}
}

// GetID 实现 IObject 接口
func (e *Entity) GetID() string {
	return e.id
}

// Get 读取字段，found=false 表示从未设置
func (e *Entity) Get(name string) (any, bool) {
	value, found := e.data[name]
	return value, found
}

// Set 写入字段（upsert），不约束值类型
func (e *Entity) Set(name string, value any) {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[name] = value
}

// Has 字段是否已设置
func (e *Entity) Has(name string) bool {
	_, found := e.data[name]
	return found
}

// Fields 返回已设置的字段名（按字典序）
func (e *Entity) Fields() []string {
	names := make([]string, 0, len(e.data))
	for name := range e.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String 便于日志输出
func (e *Entity) String() string {
	return fmt.Sprintf("Entity(%s)", e.id)
}

// Field 按类型读取字段
//
// 返回：
//   - *FieldError 且 errors.Is(err, ErrFieldNotFound)：字段未设置
//   - *FieldError 且 errors.Is(err, ErrFieldTypeMismatch)：字段值不是 T
func Field[T any](e *Entity, name string) (T, error) {
	var zero T
	raw, found := e.Get(name)
	if !found {
		return zero, &FieldError{EntityID: e.id, Field: name, Err: ErrFieldNotFound}
	}
	value, ok := raw.(T)
	if !ok {
		return zero, &FieldError{
			EntityID: e.id,
			Field:    name,
			Want:     fmt.Sprintf("%T", zero),
			Got:      fmt.Sprintf("%T", raw),
			Err:      ErrFieldTypeMismatch,
		}
	}
	return value, nil
}
