package domain

// IValidatable 可验证接口。
// 用例上下文实现此接口时，执行器会在 Execute 之前调用 Validate。
type IValidatable interface {
	// Validate 验证状态是否有效
	// 返回 error 表示验证失败，nil 表示验证成功
	Validate() error
}
