package di

import (
	"fmt"
	"reflect"

	"dci/errors"
)

// Contract 契约键：由精确的声明类型派生
//
// 匹配只看类型是否完全一致，不做父类型/接口实现的宽松匹配。
// *Account 与 Account、接口 I 与实现 *Impl 都是不同的契约。
type Contract struct {
	typ reflect.Type
}

// ContractOf 返回类型 T 的契约
func ContractOf[T any]() Contract {
	return Contract{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// ContractFor 返回值 v 的动态类型对应的契约，v 为 nil 时返回零值契约
func ContractFor(v any) Contract {
	if s, ok := v.(Seed); ok {
		return s.contract
	}
	return Contract{typ: reflect.TypeOf(v)}
}

// Type 返回契约对应的类型
func (c Contract) Type() reflect.Type {
	return c.typ
}

// IsZero 是否为空契约
func (c Contract) IsZero() bool {
	return c.typ == nil
}

// String 返回类型标识（如 *composition.Account）
func (c Contract) String() string {
	if c.typ == nil {
		return "<nil>"
	}
	return c.typ.String()
}

// Seed 以显式契约登记的种子值
//
// 默认情况下种子按其动态类型登记；需要以接口等声明类型登记时使用 As。
type Seed struct {
	contract Contract
	value    reflect.Value
}

// As 以类型 T（而非 v 的动态类型）登记种子
//
//	composer.Compose[*Report](c, di.As[report.ISink](sink))
func As[T any](v T) Seed {
	return Seed{
		contract: ContractOf[T](),
		value:    reflect.ValueOf(&v).Elem(),
	}
}

// Contract 返回种子契约
func (s Seed) Contract() Contract {
	return s.contract
}

// toSeed 把调用方传入的值转换为种子，nil 与空指针被拒绝
func toSeed(v any) (Seed, error) {
	var seed Seed
	switch sv := v.(type) {
	case nil:
		return Seed{}, errors.NewError(errors.ErrCodeInvalidInput, "seed cannot be nil")
	case Seed:
		seed = sv
	default:
		seed = Seed{contract: Contract{typ: reflect.TypeOf(v)}, value: reflect.ValueOf(v)}
	}

	if seed.contract.IsZero() || !seed.value.IsValid() || isNilValue(seed.value) {
		return Seed{}, errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("seed for contract %s cannot be nil", seed.contract)).
			WithContext("contract", seed.contract.String())
	}
	return seed, nil
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
