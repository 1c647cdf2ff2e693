// Package role 提供把行为附加到实体上的两种方式
//
//   - Role：动态绑定，包装一个 entity.Entity，通过 Attr[T] 按固定字段名读写
//   - RoleFor[T]：静态绑定，由组合代码直接赋值一个强类型数据对象
package role

import (
	"fmt"

	"dci/domain/entity"
	"dci/errors"
)

// Role 动态角色基础类型，供具体角色嵌入
//
// 角色只持有实体引用，自身不保存领域状态；多个角色可以同时包装同一个实体。
type Role struct {
	entity *entity.Entity
}

// New 创建绑定到实体的角色
func New(e *entity.Entity) Role {
	return Role{entity: e}
}

// GetID 委托给实体标识
func (r Role) GetID() string {
	if r.entity == nil {
		return ""
	}
	return r.entity.GetID()
}

// Entity 返回被包装的实体
func (r Role) Entity() *entity.Entity {
	return r.entity
}

// Attr 角色上按固定字段名访问实体数据的类型化访问器
//
//	var balance = role.NewAttr[banking.Amount]("Balance")
//	current, err := balance.Get(r)
type Attr[T any] struct {
	name string
}

// NewAttr 创建访问器
func NewAttr[T any](name string) Attr[T] {
	return Attr[T]{name: name}
}

// Name 返回字段名
func (a Attr[T]) Name() string {
	return a.name
}

// Get 读取字段；字段缺失时返回 FIELD_NOT_FOUND，不会退化为零值
func (a Attr[T]) Get(r Role) (T, error) {
	var zero T
	if r.entity == nil {
		return zero, errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("role is not bound to an entity (field %s)", a.name))
	}
	value, err := entity.Field[T](r.entity, a.name)
	if err != nil {
		return zero, errors.Normalize(err)
	}
	return value, nil
}

// Set 写入字段
func (a Attr[T]) Set(r Role, value T) {
	r.entity.Set(a.name, value)
}

// Present 字段是否已设置
func (a Attr[T]) Present(r Role) bool {
	return r.entity != nil && r.entity.Has(a.name)
}

// Update 读-改-写；读取失败时不写入
func (a Attr[T]) Update(r Role, fn func(T) T) error {
	current, err := a.Get(r)
	if err != nil {
		return err
	}
	a.Set(r, fn(current))
	return nil
}
