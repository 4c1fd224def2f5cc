package pane

import (
	"context"
	"math"
	"testing"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesDeps(t *testing.T) {
	cfg := config.DefaultConfiguration()

	_, err := New(cfg, Deps{Grid: &fakeGrid{}, Store: &fakeStore{}})
	assert.Error(t, err, "slots are required")

	slots := make([]Slot, config.SlotCount)
	for i := range slots {
		slots[i] = Slot{Header: &fakeLabel{}, Browser: &fakeBrowser{}}
	}
	_, err = New(cfg, Deps{Slots: slots, Store: &fakeStore{}})
	assert.Error(t, err, "grid is required")

	_, err = New(cfg, Deps{Slots: slots, Grid: &fakeGrid{}})
	assert.Error(t, err, "store is required")

	slots[3].Browser = nil
	_, err = New(cfg, Deps{Slots: slots, Grid: &fakeGrid{}, Store: &fakeStore{}})
	assert.Error(t, err)
}

func TestApplyConfiguration(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[1].Visible = false
	cfg.Services[2].Width = 2.5
	cfg.Services[6].Visible = false
	cfg.Services[7].Visible = false
	h := newHarness(t, cfg)

	h.r.ApplyConfiguration()

	for i, rec := range cfg.Services {
		assert.Equal(t, rec.Name, h.headers[i].text)
		assert.Equal(t, rec.Visible, h.menu[rec.Name].checked, rec.Name)
	}
	assert.Equal(t, 1.0, h.grid.widths[0])
	assert.Equal(t, 0.0, h.grid.widths[1])
	assert.Equal(t, 2.5, h.grid.widths[2])
	assert.Equal(t, 0.0, h.grid.widths[7])

	// ChatGPT | (Claude hidden) | DeepSeek ... Kimi | (Mistral, Qwen hidden)
	assert.True(t, h.grid.splitters[0], "visible column with visible columns to the right")
	assert.False(t, h.grid.splitters[1], "hidden column never shows its splitter")
	assert.True(t, h.grid.splitters[4])
	assert.False(t, h.grid.splitters[5], "last visible column collapses the trailing gutter")
	assert.False(t, h.grid.splitters[6])
}

func TestApplyConfiguration_ZeroWidthVisibleColumnGetsDefault(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[0].Width = 0
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()
	assert.Equal(t, 1.0, h.grid.widths[0])
}

func TestApplyConfiguration_NonFiniteWidthGetsDefault(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[0].Width = math.NaN()
	cfg.Services[1].Width = math.Inf(1)
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()
	assert.Equal(t, 1.0, h.grid.widths[0])
	assert.Equal(t, 1.0, h.grid.widths[1])

	require.NoError(t, h.r.Save())
	saved := h.store.last()
	assert.Equal(t, 1.0, saved.Services[0].Width, "saved widths are read back from the grid")
	assert.Equal(t, 1.0, saved.Services[1].Width)
}

func TestToggleVisibility_QwenScenario(t *testing.T) {
	h := readyHarness(t)

	visible, found := h.r.ToggleVisibility("Qwen")
	require.True(t, found)
	assert.False(t, visible)

	rec, _ := h.r.Service(7)
	assert.False(t, rec.Visible)
	assert.False(t, h.menu["Qwen"].checked)
	assert.Equal(t, 0.0, h.grid.widths[7])
	assert.False(t, h.grid.splitters[6], "nothing visible remains right of Mistral")
	assert.True(t, h.grid.splitters[5], "Kimi still has Mistral to its right")

	require.Len(t, h.store.saves, 1)
	assert.False(t, h.store.last().Services[7].Visible)
}

func TestToggleVisibility_SplitterBeforeMiddleColumnStays(t *testing.T) {
	h := readyHarness(t)
	h.r.ToggleVisibility("Gemini")

	assert.Equal(t, 0.0, h.grid.widths[3])
	assert.True(t, h.grid.splitters[2], "DeepSeek still has visible panes to its right")
	assert.False(t, h.grid.splitters[3])
}

func TestToggleVisibility_TwiceRestoresAndNavigatesOnlyWhenBlank(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[2].Visible = false
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()
	require.Equal(t, 0, h.r.InitializeBrowsers(context.Background()))

	deepseek := h.browsers[2]
	assert.Empty(t, deepseek.navigations, "hidden panes are not loaded at startup")

	visible, _ := h.r.ToggleVisibility("DeepSeek")
	assert.True(t, visible)
	assert.Equal(t, []string{"https://chat.deepseek.com"}, deepseek.navigations, "off->on with a blank browser loads it")
	assert.Equal(t, 1.0, h.grid.widths[2])

	visible, _ = h.r.ToggleVisibility("DeepSeek")
	assert.False(t, visible)
	assert.Len(t, deepseek.navigations, 1, "on->off has no browser side effect")

	visible, _ = h.r.ToggleVisibility("DeepSeek")
	assert.True(t, visible)
	assert.Len(t, deepseek.navigations, 1, "content already loaded, no second navigation")

	assert.Len(t, h.store.saves, 3)
}

func TestToggleVisibility_TreatsAboutBlankAsUnloaded(t *testing.T) {
	h := readyHarness(t)
	h.r.ToggleVisibility("Claude")
	h.browsers[1].source = BlankAddress

	h.r.ToggleVisibility("Claude")
	assert.Equal(t, []string{"https://claude.ai"}, h.browsers[1].navigations)
}

func TestToggleVisibility_UnreadyBrowserIsNotNavigated(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[0].Visible = false
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()

	h.r.ToggleVisibility("ChatGPT")
	assert.Empty(t, h.browsers[0].navigations)
}

func TestToggleVisibility_FindsByNameAfterReorder(t *testing.T) {
	h := readyHarness(t)
	require.NoError(t, h.r.Reorder(0, 5))
	h.clearNavigations()

	h.r.ToggleVisibility("ChatGPT")
	assert.Equal(t, 5, h.r.SlotOf("ChatGPT"))
	assert.Equal(t, 0.0, h.grid.widths[5])
	assert.Equal(t, 1.0, h.grid.widths[0])
	assert.False(t, h.menu["ChatGPT"].checked)
}

func TestToggleVisibility_UnknownNameIsNoop(t *testing.T) {
	h := readyHarness(t)
	_, found := h.r.ToggleVisibility("Perplexity")
	assert.False(t, found)
	assert.Empty(t, h.store.saves)
}

func TestReorder_SwapsRecordsHeadersAndMenus(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[1].Visible = false
	cfg.Services[1].Width = 3
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()
	require.Equal(t, 0, h.r.InitializeBrowsers(context.Background()))
	h.clearNavigations()

	require.NoError(t, h.r.Reorder(1, 4))

	got := h.r.Configuration()
	assert.Equal(t, "Grok", got.Services[1].Name)
	assert.Equal(t, 1, got.Services[1].Order)
	assert.Equal(t, "Claude", got.Services[4].Name)
	assert.Equal(t, 4, got.Services[4].Order)

	assert.Equal(t, "Grok", h.headers[1].text)
	assert.Equal(t, "Claude", h.headers[4].text)
	assert.True(t, h.menu["Grok"].checked)
	assert.False(t, h.menu["Claude"].checked)

	// Visibility and width travel with the record.
	assert.Equal(t, 1.0, h.grid.widths[1])
	assert.Equal(t, 0.0, h.grid.widths[4])
	assert.Equal(t, 3.0, got.Services[4].Width)

	assert.Equal(t, []string{"https://grok.com"}, h.browsers[1].navigations)
	assert.Equal(t, []string{"https://claude.ai"}, h.browsers[4].navigations)
	assert.Equal(t, 2, h.totalNavigations(), "only the two affected panes reload")

	require.Len(t, h.store.saves, 1)
	assert.Equal(t, "Grok", h.store.last().Services[1].Name)
}

func TestReorder_IsSelfInverseOnData(t *testing.T) {
	h := readyHarness(t)
	before := h.r.Configuration()

	require.NoError(t, h.r.Reorder(2, 6))
	require.NoError(t, h.r.Reorder(2, 6))

	assert.Equal(t, before, h.r.Configuration())
	for i, name := range config.DefaultNames() {
		assert.Equal(t, name, h.headers[i].text)
	}
	assert.Len(t, h.browsers[2].navigations, 2, "each swap reloads")
	assert.Len(t, h.browsers[6].navigations, 2)
}

func TestReorder_NoopsAndErrors(t *testing.T) {
	h := readyHarness(t)

	require.NoError(t, h.r.Reorder(3, 3))
	assert.Empty(t, h.store.saves)
	assert.Zero(t, h.totalNavigations())

	assert.ErrorIs(t, h.r.Reorder(-1, 2), ErrSlotOutOfRange)
	assert.ErrorIs(t, h.r.Reorder(0, config.SlotCount), ErrSlotOutOfRange)
	assert.Empty(t, h.store.saves)
}

func TestReorder_SkipsUnreadyAndEmptyEndpoints(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[0].Endpoint = ""
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()
	h.browsers[0].ready = true

	require.NoError(t, h.r.Reorder(0, 1))
	assert.Equal(t, []string{"https://claude.ai"}, h.browsers[0].navigations)
	assert.Empty(t, h.browsers[1].navigations, "slot 1 is not ready and its new record has no endpoint")
}

func TestResize(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[3].Visible = false
	cfg.Services[3].Width = 1.75
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()

	h.grid.widths[0] = 2.5
	h.grid.widths[5] = 0.5
	h.r.Resize()

	got := h.r.Configuration()
	assert.Equal(t, 2.5, got.Services[0].Width)
	assert.Equal(t, 0.5, got.Services[5].Width)
	assert.Equal(t, 1.75, got.Services[3].Width, "collapsed column keeps its stored width")
}

func TestSave_CapturesWidthsAndSurvivesStoreErrors(t *testing.T) {
	h := readyHarness(t)
	h.grid.widths[2] = 4
	h.store.err = errBoom

	assert.ErrorIs(t, h.r.Save(), errBoom)
	assert.Equal(t, 4.0, h.store.last().Services[2].Width)
	assert.Equal(t, 4.0, h.r.Configuration().Services[2].Width, "in-memory state stays correct")

	_, found := h.r.ToggleVisibility("Kimi")
	assert.True(t, found, "mutations continue after a failed save")
}

func TestResetLayout(t *testing.T) {
	t.Run("declined leaves everything", func(t *testing.T) {
		h := readyHarness(t)
		h.r.ToggleVisibility("Claude")
		saves := len(h.store.saves)

		var asked notification
		ok := h.r.ResetLayout(ConfirmFunc(func(title, message string) bool {
			asked = notification{title, message}
			return false
		}))
		assert.False(t, ok)
		assert.Equal(t, "Reset Layout", asked.title)
		assert.Contains(t, asked.message, "reset all layout settings")
		assert.False(t, h.r.Configuration().Services[1].Visible)
		assert.Len(t, h.store.saves, saves)
	})

	t.Run("nil confirmer declines", func(t *testing.T) {
		h := readyHarness(t)
		assert.False(t, h.r.ResetLayout(nil))
	})

	t.Run("confirmed restores defaults and reloads visible panes", func(t *testing.T) {
		cfg := config.DefaultConfiguration()
		cfg.Browser.Engine = config.EngineRod
		h := newHarness(t, cfg)
		h.r.ApplyConfiguration()
		require.Equal(t, 0, h.r.InitializeBrowsers(context.Background()))
		require.NoError(t, h.r.Reorder(0, 7))
		h.r.ToggleVisibility("Kimi")
		h.grid.widths[2] = 3
		h.clearNavigations()
		require.True(t, h.r.BeginDrag(1))

		assert.True(t, h.r.ResetLayout(Confirmed))

		got := h.r.Configuration()
		want := config.DefaultConfiguration()
		want.Browser.Engine = config.EngineRod
		assert.Equal(t, want, got)

		for i, name := range config.DefaultNames() {
			assert.Equal(t, name, h.headers[i].text)
			assert.True(t, h.menu[name].checked)
			assert.Equal(t, 1.0, h.grid.widths[i])
			assert.Equal(t, []string{want.Services[i].Endpoint}, h.browsers[i].navigations)
		}
		_, dragging := h.r.Dragging()
		assert.False(t, dragging)
		assert.Equal(t, want.Services, h.store.last().Services)
	})
}

func TestRefreshAndNewChat(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Services[4].Endpoint = ""
	h := newHarness(t, cfg)
	h.r.ApplyConfiguration()
	require.Equal(t, 0, h.r.InitializeBrowsers(context.Background()))
	h.browsers[6].ready = false
	h.clearNavigations()
	before := h.r.Configuration()

	h.r.RefreshAll()
	for i, b := range h.browsers {
		if i == 6 {
			assert.Zero(t, b.reloads)
			continue
		}
		assert.Equal(t, 1, b.reloads, "slot %d", i)
	}

	require.NoError(t, h.r.RefreshOne(2))
	assert.Equal(t, 2, h.browsers[2].reloads)
	assert.ErrorIs(t, h.r.RefreshOne(6), ErrBrowserNotReady)
	assert.ErrorIs(t, h.r.RefreshOne(8), ErrSlotOutOfRange)

	h.r.NewChatAll()
	for i, b := range h.browsers {
		switch i {
		case 4, 6:
			assert.Empty(t, b.navigations, "slot %d", i)
		default:
			assert.Equal(t, []string{cfg.Services[i].Endpoint}, b.navigations, "slot %d", i)
		}
	}

	assert.Equal(t, before, h.r.Configuration())
	assert.Empty(t, h.store.saves, "refresh and new chat do not persist")
}

func TestNavigationErrorsAreSwallowed(t *testing.T) {
	h := readyHarness(t)
	h.browsers[0].navigateErr = errBoom

	h.r.NewChatAll()
	assert.Len(t, h.browsers[0].navigations, 1)
	assert.Len(t, h.browsers[1].navigations, 1)
}

func TestClose_Persists(t *testing.T) {
	h := readyHarness(t)
	h.r.BeginDrag(2)
	h.grid.widths[1] = 0.25

	require.NoError(t, h.r.Close())
	assert.Equal(t, 0.25, h.store.last().Services[1].Width)
	_, dragging := h.r.Dragging()
	assert.False(t, dragging)
}

func TestSplitterVisible(t *testing.T) {
	services := config.DefaultConfiguration().Services
	for i := range services {
		services[i].Visible = false
	}
	services[2].Visible = true
	services[5].Visible = true

	want := []bool{false, false, true, false, false, false, false}
	for i, w := range want {
		assert.Equal(t, w, SplitterVisible(services, i, config.SlotCount), "splitter %d", i)
	}
	assert.False(t, SplitterVisible(services, -1, config.SlotCount))
	assert.False(t, SplitterVisible(services, 2, 3), "columns past the grid do not count")
}
