package navguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Check(t *testing.T) {
	g := Default("")

	tests := []struct {
		name   string
		home   string
		target string
		want   Decision
	}{
		{
			name:   "qwen bounced to tongyi is redirected",
			home:   "https://chat.qwen.ai",
			target: "https://tongyi.aliyun.com/qianwen/",
			want:   Decision{Cancel: true, Redirect: "https://chat.qwen.ai/", Rule: "qwen-regional-redirect"},
		},
		{
			name:   "tongyi url carrying chat.qwen.ai passes",
			home:   "https://chat.qwen.ai",
			target: "https://tongyi.aliyun.com/login?next=https://chat.qwen.ai/",
		},
		{
			name:   "qwen own pages pass",
			home:   "https://chat.qwen.ai",
			target: "https://chat.qwen.ai/c/123",
		},
		{
			name:   "rule is scoped to the qwen pane",
			home:   "https://claude.ai",
			target: "https://tongyi.aliyun.com/",
		},
		{
			name:   "match is case insensitive",
			home:   "https://Chat.Qwen.AI/",
			target: "https://TONGYI.aliyun.com/",
			want:   Decision{Cancel: true, Redirect: "https://chat.qwen.ai/", Rule: "qwen-regional-redirect"},
		},
		{
			name:   "blank home never matches",
			home:   "",
			target: "https://tongyi.aliyun.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Check(tt.home, tt.target))
		})
	}
}

func TestGuard_Headers(t *testing.T) {
	g := Default("de-DE,de;q=0.9")
	h := g.Headers()
	assert.Equal(t, "de-DE,de;q=0.9", h["Accept-Language"])
	assert.Contains(t, h["Accept"], "text/html")

	h["Accept"] = "mutated"
	assert.NotEqual(t, "mutated", g.Headers()["Accept"])

	assert.Equal(t, "en-US,en;q=0.9", Default("").Headers()["Accept-Language"])
}

func TestGuard_MergeHeaders(t *testing.T) {
	g := Default("")
	merged := g.MergeHeaders(map[string]string{
		"accept-language": "fr",
		"cookie":          "a=b",
	})

	assert.Equal(t, "a=b", merged["cookie"])
	assert.Equal(t, "en-US,en;q=0.9", merged["Accept-Language"])
	_, lower := merged["accept-language"]
	assert.False(t, lower)
}

func TestNew_RejectsBadPatterns(t *testing.T) {
	_, err := New(nil, []Rule{{Name: "bad", Home: "[", Block: []string{"*"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home pattern")

	_, err = New(nil, []Rule{{Name: "bad", Home: "*", Block: []string{"["}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block pattern")
}
