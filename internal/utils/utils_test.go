package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"yuepai/internal/region"
)

func TestRenderContent(t *testing.T) {
	out := string(RenderContent("周末西湖\n汉服外拍 https://example.com/a"))
	assert.Contains(t, out, "<br")
	assert.Contains(t, out, `href="https://example.com/a"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noopener")

	assert.Empty(t, RenderContent(""))
}

func TestRenderContentSanitizes(t *testing.T) {
	out := string(RenderContent(`约拍<script>alert(1)</script>`))
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "约拍")
}

func TestRenderContentDropsImages(t *testing.T) {
	out := string(RenderContent("西湖外拍 ![样片](https://example.com/a.jpg) <img src=\"https://example.com/b.jpg\">"))
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "example.com/b.jpg")
	assert.Contains(t, out, "西湖外拍")
}

func TestEnhanceHTMLContent(t *testing.T) {
	out := string(EnhanceHTMLContent(`<p><img src="/img/a.jpg"/><a href="/p/1">站内</a></p>`))
	assert.NotContains(t, out, "<img")
	assert.True(t, strings.Contains(out, `<a href="/p/1">站内</a>`), out)
}

func TestConversions(t *testing.T) {
	assert.Equal(t, 12, StringToInt("12"))
	assert.Equal(t, 0, StringToInt("x"))
	assert.Equal(t, uint(7), StringToUint("7"))
	assert.Equal(t, uint(0), StringToUint("-7"))
	assert.Equal(t, region.Code(330106), ParseRegionCode("330106"))
	assert.Equal(t, region.Code(0), ParseRegionCode(""))
	assert.Equal(t, region.Code(0), ParseRegionCode("-1"))
}

func TestDefaultAvatar(t *testing.T) {
	assert.Equal(t, "💃", DefaultAvatar("模特"))
	assert.Equal(t, "📷", DefaultAvatar("路人"))
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "刚刚", TimeAgo(time.Now()))
	assert.Equal(t, "2小时前", TimeAgo(time.Now().Add(-2*time.Hour-time.Minute)))
	assert.Equal(t, "3天前", TimeAgo(time.Now().Add(-73*time.Hour)))
}
