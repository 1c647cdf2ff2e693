package di

import (
	"fmt"
	"reflect"
	"sync"

	"dci/errors"
)

// injectTag 标记需要注入的结构体字段
const injectTag = "inject"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// IComposed 部件在全部依赖注入完成后被回调（可选实现）
//
// 返回错误时本次组合失败。
type IComposed interface {
	OnImportsSatisfied() error
}

// PartInfo 部件的只读描述，用于诊断
type PartInfo struct {
	Contract     Contract
	Dependencies []Contract
	Origin       string
}

type part struct {
	contract Contract
	deps     []Contract
	origin   string
	build    func(args []reflect.Value) (reflect.Value, error)
}

func (p *part) info() PartInfo {
	deps := make([]Contract, len(p.deps))
	copy(deps, p.deps)
	return PartInfo{Contract: p.contract, Dependencies: deps, Origin: p.origin}
}

// Catalog 可组合部件目录
//
// 由调用方持有并显式传给 Composer，不存在进程级全局目录。
// 同一契约允许登记多个部件；无种子时解析该契约会得到歧义错误。
type Catalog struct {
	parts     map[Contract][]*part
	contracts []Contract
	mutex     sync.RWMutex
}

// NewCatalog 创建空目录
func NewCatalog() *Catalog {
	return &Catalog{
		parts: make(map[Contract][]*part),
	}
}

// Provide 登记构造函数
//
// 构造函数形如 func(deps...) T 或 func(deps...) (T, error)：
//   - 第一个返回值类型即导出契约
//   - 每个参数类型即一个依赖契约
func (c *Catalog) Provide(constructor any) error {
	if constructor == nil {
		return errors.NewError(errors.ErrCodeInvalidInput, "constructor cannot be nil")
	}
	fv := reflect.ValueOf(constructor)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return errors.NewError(errors.ErrCodeInvalidInput, "parameter must be a function")
	}
	if ft.IsVariadic() {
		return errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("variadic constructor %s is not supported", ft))
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("constructor %s must return T or (T, error)", ft))
	}

	contract := Contract{typ: ft.Out(0)}
	deps := make([]Contract, ft.NumIn())
	for i := 0; i < ft.NumIn(); i++ {
		deps[i] = Contract{typ: ft.In(i)}
	}

	p := &part{
		contract: contract,
		deps:     deps,
		origin:   ft.String(),
		build: func(args []reflect.Value) (reflect.Value, error) {
			results := fv.Call(args)
			if len(results) == 2 && !results[1].IsNil() {
				return reflect.Value{}, results[1].Interface().(error)
			}
			return results[0], nil
		},
	}
	c.add(p)
	return nil
}

// ProvideStruct 登记结构体部件（成员注入）
//
// prototype 必须是结构体指针（通常传 (*S)(nil) 或 &S{}），导出契约为 *S；
// 依赖为带 `inject:""` 标签的导出字段，按字段声明顺序解析。
func (c *Catalog) ProvideStruct(prototype any) error {
	if prototype == nil {
		return errors.NewError(errors.ErrCodeInvalidInput, "prototype cannot be nil")
	}
	pt := reflect.TypeOf(prototype)
	if pt.Kind() != reflect.Pointer || pt.Elem().Kind() != reflect.Struct {
		return errors.NewError(errors.ErrCodeInvalidInput,
			fmt.Sprintf("prototype %s must be a pointer to struct", pt))
	}

	st := pt.Elem()
	var deps []Contract
	var indexes []int
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup(injectTag)
		if !ok {
			continue
		}
		if tag != "" {
			return errors.NewError(errors.ErrCodeInvalidInput,
				fmt.Sprintf("field %s.%s: unsupported inject tag %q", st, field.Name, tag))
		}
		if !field.IsExported() {
			return errors.NewError(errors.ErrCodeInvalidInput,
				fmt.Sprintf("field %s.%s must be exported to be injected", st, field.Name))
		}
		deps = append(deps, Contract{typ: field.Type})
		indexes = append(indexes, i)
	}

	p := &part{
		contract: Contract{typ: pt},
		deps:     deps,
		origin:   "struct " + pt.String(),
		build: func(args []reflect.Value) (reflect.Value, error) {
			v := reflect.New(st)
			for i, idx := range indexes {
				v.Elem().Field(idx).Set(args[i])
			}
			if composed, ok := v.Interface().(IComposed); ok {
				if err := composed.OnImportsSatisfied(); err != nil {
					return reflect.Value{}, err
				}
			}
			return v, nil
		},
	}
	c.add(p)
	return nil
}

// MustProvide 登记构造函数（panic版本），用于模块初始化
func (c *Catalog) MustProvide(constructor any) {
	if err := c.Provide(constructor); err != nil {
		panic(err)
	}
}

// MustProvideStruct 登记结构体部件（panic版本）
func (c *Catalog) MustProvideStruct(prototype any) {
	if err := c.ProvideStruct(prototype); err != nil {
		panic(err)
	}
}

// Contracts 按登记顺序返回所有导出契约（去重）
func (c *Catalog) Contracts() []Contract {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	out := make([]Contract, len(c.contracts))
	copy(out, c.contracts)
	return out
}

// Parts 返回导出指定契约的部件描述
func (c *Catalog) Parts(contract Contract) []PartInfo {
	parts := c.lookup(contract)
	out := make([]PartInfo, 0, len(parts))
	for _, p := range parts {
		out = append(out, p.info())
	}
	return out
}

// Has 目录中是否存在导出该契约的部件
func (c *Catalog) Has(contract Contract) bool {
	return len(c.lookup(contract)) > 0
}

func (c *Catalog) add(p *part) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, exists := c.parts[p.contract]; !exists {
		c.contracts = append(c.contracts, p.contract)
	}
	c.parts[p.contract] = append(c.parts[p.contract], p)
}

func (c *Catalog) lookup(contract Contract) []*part {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.parts[contract]
}
