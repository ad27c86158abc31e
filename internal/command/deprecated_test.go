package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeprecatedBridge_Execute_WarnsAndDelegates(t *testing.T) {
	r, buf := newTestRegistry()
	actual := &mockHandler{name: "download"}
	r.RegisterWithAlias(actual, "dl")

	h, ok := r.Get("dl")
	require.True(t, ok)

	err := h.Execute(context.Background(), []string{"url"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, actual.calls, "основной handler должен быть вызван")
	assert.Equal(t, []string{"url"}, actual.gotArgs)
	require.Len(t, buf.Warnings(), 1)
	assert.Contains(t, buf.Warnings()[0], "'dl' is deprecated")
	assert.Contains(t, buf.Warnings()[0], "'download'")
	assert.Empty(t, buf.String(), "предупреждение не должно попадать в основной вывод")
}

func TestDeprecatedBridge_FollowsReregisteredPrimary(t *testing.T) {
	r, _ := newTestRegistry()
	first := &mockHandler{name: "download"}
	second := &mockHandler{name: "download", needState: true}
	r.RegisterWithAlias(first, "dl")
	r.Register(second)

	h, ok := r.Get("dl")
	require.True(t, ok)
	require.NoError(t, h.Execute(context.Background(), []string{"url"}, nil))

	assert.Zero(t, first.calls, "прежний обработчик не должен вызываться")
	assert.Equal(t, 1, second.calls)
	assert.True(t, h.(*DeprecatedBridge).RequiresState())

	infos := r.ListAllWithAliases()
	require.Len(t, infos, 1)
	assert.Equal(t, "dl", infos[0].DeprecatedAlias)
}

func TestDeprecatedBridge_PrimaryReplacedByAlias_UsesOriginal(t *testing.T) {
	r, _ := newTestRegistry()
	actual := &mockHandler{name: "download"}
	r.RegisterWithAlias(actual, "dl")
	r.RegisterWithAlias(&mockHandler{name: "fetch"}, "download")

	h, _ := r.Get("dl")
	require.NoError(t, h.Execute(context.Background(), nil, nil))
	assert.Equal(t, 1, actual.calls)
}

func TestDeprecatedBridge_Execute_PropagatesError(t *testing.T) {
	r, _ := newTestRegistry()
	expected := errors.New("test error")
	r.RegisterWithAlias(&mockHandler{name: "new-cmd", err: expected}, "old-cmd")

	h, _ := r.Get("old-cmd")
	assert.Equal(t, expected, h.Execute(context.Background(), nil, nil))
}

func TestDeprecatedBridge_Execute_CancelledContext(t *testing.T) {
	r, buf := newTestRegistry()
	actual := &mockHandler{name: "new-cmd"}
	r.RegisterWithAlias(actual, "old-cmd")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h, _ := r.Get("old-cmd")
	assert.ErrorIs(t, h.Execute(ctx, nil, nil), context.Canceled)
	assert.Zero(t, actual.calls)
	assert.Empty(t, buf.Warnings())
}

func TestDeprecatedBridge_Metadata(t *testing.T) {
	r, _ := newTestRegistry()
	r.RegisterWithAlias(&mockHandler{name: "new-cmd", needState: true}, "old-cmd")

	h, _ := r.Get("old-cmd")
	bridge, ok := h.(*DeprecatedBridge)
	require.True(t, ok)

	assert.Equal(t, "old-cmd", bridge.Name())
	assert.Equal(t, "mock: new-cmd", bridge.Description())
	assert.True(t, bridge.IsDeprecated())
	assert.Equal(t, "new-cmd", bridge.NewName())
	assert.True(t, bridge.RequiresState(), "требование состояния наследуется от основного handler")
}

func TestRegisterWithAlias_EmptyDeprecated(t *testing.T) {
	r, _ := newTestRegistry()
	r.RegisterWithAlias(&mockHandler{name: "my-cmd"}, "")

	assert.Equal(t, []string{"my-cmd"}, r.Names())
}

func TestRegisterWithAlias_SameName_Panics(t *testing.T) {
	r, _ := newTestRegistry()
	assert.PanicsWithValue(t, "command: deprecated name cannot be same as handler name: x", func() {
		r.RegisterWithAlias(&mockHandler{name: "x"}, "x")
	})
}
