package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dci/domain/entity"
	"dci/errors"
)

type money int64

var balance = NewAttr[money]("Balance")

type sourceAccount struct {
	Role
}

func (s sourceAccount) Balance() (money, error) {
	return balance.Get(s.Role)
}

func (s sourceAccount) Decrease(by money) error {
	return balance.Update(s.Role, func(m money) money { return m - by })
}

// TestRole_Delegation 角色读写都经过实体
func TestRole_Delegation(t *testing.T) {
	account := entity.New("account/1")
	account.Set("Balance", money(1000))

	src := sourceAccount{Role: New(account)}
	assert.Equal(t, "account/1", src.GetID())
	assert.Same(t, account, src.Entity())

	got, err := src.Balance()
	require.NoError(t, err)
	assert.Equal(t, money(1000), got)

	require.NoError(t, src.Decrease(350))
	stored, _ := account.Get("Balance")
	assert.Equal(t, money(650), stored)
}

// TestRole_SharedEntity 多个角色共享同一实体
func TestRole_SharedEntity(t *testing.T) {
	account := entity.New("account/1")
	account.Set("Balance", money(100))

	a := sourceAccount{Role: New(account)}
	b := sourceAccount{Role: New(account)}

	require.NoError(t, a.Decrease(40))
	got, err := b.Balance()
	require.NoError(t, err)
	assert.Equal(t, money(60), got)
}

// TestAttr_MissingField 缺失字段必须报错，不能当作零
func TestAttr_MissingField(t *testing.T) {
	src := sourceAccount{Role: New(entity.New("account/empty"))}

	_, err := src.Balance()
	require.Error(t, err)
	assert.True(t, errors.IsFieldNotFound(err))
	assert.ErrorIs(t, err, entity.ErrFieldNotFound)

	// Update 在读取失败时不写入
	require.Error(t, src.Decrease(10))
	assert.False(t, balance.Present(src.Role))
}

// TestAttr_TypeMismatch 字段类型不符
func TestAttr_TypeMismatch(t *testing.T) {
	account := entity.New("account/1")
	account.Set("Balance", 1000)

	_, err := balance.Get(New(account))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCodeFieldTypeMismatch))
}

// TestAttr_UnboundRole 未绑定实体的角色
func TestAttr_UnboundRole(t *testing.T) {
	var r Role

	assert.Equal(t, "", r.GetID())
	assert.False(t, balance.Present(r))
	_, err := balance.Get(r)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetErrorCode(err))
	assert.Equal(t, "Balance", balance.Name())
}

type ledgerData struct {
	Number string
	Total  money
}

type ledgerView struct {
	RoleFor[*ledgerData]
}

func (v *ledgerView) Total() money {
	return v.This().Total
}

// TestRoleFor 静态绑定
func TestRoleFor(t *testing.T) {
	data := &ledgerData{Number: "1001", Total: 2000}

	view := &ledgerView{}
	assert.Nil(t, view.This())

	view.SetThis(data)
	assert.Same(t, data, view.This())
	assert.Equal(t, money(2000), view.Total())

	data.Total = 450
	assert.Equal(t, money(450), view.Total())
}
