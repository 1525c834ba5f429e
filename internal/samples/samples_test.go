package samples_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/beans/internal/samples"
	"github.com/conduit-lang/beans/runtime/introspection"
)

func TestRegisteredTypes(t *testing.T) {
	tests := []struct {
		name       string
		lookup     func() (*introspection.Introspection, error)
		properties []string
	}{
		{"point", introspection.Of[*samples.Point], []string{"x", "y"}},
		{"money", introspection.Of[samples.Money], []string{"amount", "currency"}},
		{"account", introspection.Of[*samples.Account], []string{"id", "owner", "email", "password", "balance", "tags"}},
		{"tls", introspection.Of[*samples.TLS], []string{"enabled", "certFile", "keyFile"}},
		{"server config", introspection.Of[*samples.ServerConfig], []string{"id", "name", "host", "port", "timeout", "tls", "labels"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.lookup()
			require.NoError(t, err)
			assert.Equal(t, tt.properties, in.PropertyNames())

			_, err = in.Instantiate()
			if len(in.ConstructorArguments()) > 0 {
				assert.ErrorIs(t, err, introspection.ErrNoDefaultConstructor)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPointMethods(t *testing.T) {
	in := introspection.MustOf[*samples.Point]()
	p := &samples.Point{X: 3, Y: 4}

	distance, ok := in.Method("Distance")
	require.True(t, ok)
	d, err := distance.Invoke(p)
	require.NoError(t, err)
	assert.Equal(t, 5.0, d)

	translate, ok := in.Method("Translate")
	require.True(t, ok)
	_, err = translate.Invoke(p, 1, -1)
	require.NoError(t, err)
	assert.Equal(t, &samples.Point{X: 4, Y: 3}, p)
}

func TestMoneyWithDispatch(t *testing.T) {
	in := introspection.MustOf[samples.Money]()
	m := samples.NewMoney(100, "EUR")

	amount, _ := in.Property("amount")
	updated, err := amount.WithValue(m, int64(250))
	require.NoError(t, err)

	assert.Equal(t, samples.NewMoney(250, "EUR"), updated)
	assert.Equal(t, samples.NewMoney(100, "EUR"), m)
	assert.Error(t, amount.Set(m, int64(1)))
}

func TestAccountBehaviour(t *testing.T) {
	in := introspection.MustOf[*samples.Account]()
	bean, err := in.InstantiateWith(true, "a-1", nil)
	require.NoError(t, err)
	acct := bean.(*samples.Account)

	password, _ := in.Property("password")
	require.NoError(t, password.Set(acct, "correct horse"))
	_, err = password.Get(acct)
	assert.Error(t, err)
	assert.True(t, acct.CheckPassword("correct horse"))

	deposit, _ := in.Method("Deposit")
	withdraw, _ := in.Method("Withdraw")

	_, err = deposit.Invoke(acct, int64(100))
	require.NoError(t, err)
	_, err = withdraw.Invoke(acct, int64(150))
	assert.ErrorIs(t, err, samples.ErrInsufficientFunds)
	_, err = deposit.Invoke(acct, int64(0))
	assert.ErrorIs(t, err, samples.ErrInvalidAmount)
	assert.Equal(t, int64(100), acct.Balance)

	column, ok := in.IndexedProperty("Column", "balance_cents")
	require.True(t, ok)
	assert.Equal(t, "balance", column.Name())
}

func TestServerConfigAddress(t *testing.T) {
	in := introspection.MustOf[*samples.ServerConfig]()
	cfg := &samples.ServerConfig{Host: "::1", Port: 8443, Timeout: time.Second}

	address, ok := in.Method("Address")
	require.True(t, ok)
	v, err := address.Invoke(cfg)
	require.NoError(t, err)
	assert.Equal(t, "[::1]:8443", v)

	tls, _ := in.Property("tls")
	got, err := tls.Get(cfg)
	require.NoError(t, err)
	assert.Nil(t, got)
}
