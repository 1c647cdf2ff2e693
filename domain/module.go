package domain

import (
	"fmt"

	"dci/di"
	"dci/errors"
)

// IModule 定义领域模块的最小契约。
//
// 约定：
//   - Name 用于日志与调试；
//   - RegisterParts 仅向目录登记该领域可组合的部件（角色、上下文构造器等），
//     不持有实体，不做组合。
type IModule interface {
	// Name 返回领域模块名称
	Name() string

	// RegisterParts 注册该领域的所有部件
	RegisterParts(catalog *di.Catalog) error
}

// BuildCatalog 按顺序装配多个模块到同一目录
//
// 模块名重复或任一模块注册失败都视为装配失败。
func BuildCatalog(modules ...IModule) (*di.Catalog, error) {
	catalog := di.NewCatalog()
	seen := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		if m == nil {
			return nil, errors.NewError(errors.ErrCodeInvalidInput, "module cannot be nil")
		}
		name := m.Name()
		if _, ok := seen[name]; ok {
			return nil, errors.NewError(errors.ErrCodeInvalidInput,
				fmt.Sprintf("module %s registered twice", name)).WithContext("module", name)
		}
		seen[name] = struct{}{}
		if err := m.RegisterParts(catalog); err != nil {
			return nil, errors.WrapError(err, errors.GetErrorCode(err),
				fmt.Sprintf("register parts of module %s", name)).WithContext("module", name)
		}
	}
	return catalog, nil
}
