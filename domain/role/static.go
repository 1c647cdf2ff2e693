package role

// RoleFor 静态绑定的角色基础类型
//
// 关联对象由组合代码直接赋值，不做依赖发现；嵌入类型通过 This() 直接访问 T 的成员。
//
//	type AccountWithBalance struct {
//	    role.RoleFor[*Account]
//	}
type RoleFor[T any] struct {
	this T
}

// SetThis 绑定数据对象
func (r *RoleFor[T]) SetThis(this T) {
	r.this = this
}

// This 返回绑定的数据对象
func (r *RoleFor[T]) This() T {
	return r.this
}
