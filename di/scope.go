package di

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"dci/errors"
)

// scope 单次组合调用的解析作用域
//
// 种子与已构造的实例共用 values：同一契约在一次调用中至多一个实例。
// 调用结束后作用域即被丢弃，不跨调用缓存。
type scope struct {
	id        string
	catalog   *Catalog
	values    map[Contract]reflect.Value
	resolving map[Contract]bool
	path      []Contract
}

func newScope(catalog *Catalog, seeds []any) (*scope, error) {
	s := &scope{
		id:        uuid.NewString(),
		catalog:   catalog,
		values:    make(map[Contract]reflect.Value, len(seeds)),
		resolving: make(map[Contract]bool),
	}
	for _, raw := range seeds {
		seed, err := toSeed(raw)
		if err != nil {
			return nil, err
		}
		if _, exists := s.values[seed.contract]; exists {
			return nil, errors.NewError(errors.ErrCodeDuplicateContract,
				fmt.Sprintf("duplicate contract: more than one seed of type %s", seed.contract)).
				WithContext("contract", seed.contract.String())
		}
		s.values[seed.contract] = seed.value
	}
	return s, nil
}

// resolve 解析契约：已有实例（含种子）优先，其次目录中唯一的部件
func (s *scope) resolve(target Contract) (reflect.Value, error) {
	if v, ok := s.values[target]; ok {
		return v, nil
	}

	parts := s.catalog.lookup(target)
	switch {
	case len(parts) == 0:
		return reflect.Value{}, s.fail(errors.ErrCodeMissingDependency,
			fmt.Sprintf("missing dependency: no seed or part provides %s", target), target)
	case len(parts) > 1:
		origins := make([]string, len(parts))
		for i, p := range parts {
			origins[i] = p.origin
		}
		return reflect.Value{}, s.fail(errors.ErrCodeAmbiguousDependency,
			fmt.Sprintf("ambiguous dependency: %d parts provide %s [%s]", len(parts), target, strings.Join(origins, "; ")),
			target)
	}

	if s.resolving[target] {
		return reflect.Value{}, s.fail(errors.ErrCodeCyclicDependency,
			fmt.Sprintf("cyclic dependency on %s", target), target)
	}

	p := parts[0]
	s.resolving[target] = true
	s.path = append(s.path, target)
	defer func() {
		delete(s.resolving, target)
		s.path = s.path[:len(s.path)-1]
	}()

	args := make([]reflect.Value, len(p.deps))
	for i, dep := range p.deps {
		v, err := s.resolve(dep)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}

	v, err := p.build(args)
	if err != nil {
		return reflect.Value{}, errors.WrapError(err, errors.ErrCodeDependency,
			fmt.Sprintf("failed to construct %s", target)).
			WithContext("contract", target.String()).
			WithContext("part", p.origin)
	}
	if !v.IsValid() || isNilValue(v) {
		return reflect.Value{}, errors.NewError(errors.ErrCodeDependency,
			fmt.Sprintf("part %s returned nil for %s", p.origin, target)).
			WithContext("contract", target.String())
	}

	s.values[target] = v
	return v, nil
}

// fail 构造组合错误，附带未满足的契约与请求链
func (s *scope) fail(code errors.ErrorCode, msg string, target Contract) error {
	chain := s.chain()
	if chain != "" {
		msg = fmt.Sprintf("%s (required by %s)", msg, chain)
	}
	return errors.NewError(code, msg).
		WithContext("contract", target.String()).
		WithContext("required_by", chain).
		WithContext("scope", s.id)
}

func (s *scope) chain() string {
	names := make([]string, len(s.path))
	for i, c := range s.path {
		names[i] = c.String()
	}
	return strings.Join(names, " -> ")
}
