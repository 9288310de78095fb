package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
	"yuepai/internal/models"
	"yuepai/internal/utils"

	"github.com/gin-gonic/gin"
)

// 订阅源和站点地图收录的约拍条数
const (
	feedSize    = 20
	sitemapSize = 500
)

type SEOHandler struct {
	posts   RecentPostSource
	siteURL string
}

func NewSEOHandler(posts RecentPostSource, siteURL string) *SEOHandler {
	return &SEOHandler{posts: posts, siteURL: strings.TrimRight(siteURL, "/")}
}

// RobotsTxt 返回robots.txt内容
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

# 表单、通知和接口不需要收录
Disallow: /submit
Disallow: /drafts/
Disallow: /notifications
Disallow: /users/new
Disallow: /api/

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML 首页和最近的约拍详情页
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	posts, err := h.posts.Recent(c.Request.Context(), sitemapSize)
	if err != nil {
		code, msg := errorMessage(c, err)
		c.String(code, msg)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)
	fmt.Fprintf(&b, `  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>hourly</changefreq>
    <priority>1.0</priority>
  </url>
`, h.siteURL, time.Now().Format(time.DateOnly))

	for _, post := range posts {
		// 一周内发布的约拍优先级更高
		priority, changefreq := 0.6, "weekly"
		if time.Since(post.CreatedAt) < 7*24*time.Hour {
			priority, changefreq = 0.8, "daily"
		}
		fmt.Fprintf(&b, `  <url>
    <loc>%s/p/%d</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, h.siteURL, post.ID, post.UpdatedAt.Format(time.DateOnly), changefreq, priority)
	}
	b.WriteString(`</urlset>`)

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// RSSFeed 最新约拍的 RSS 2.0 订阅源
func (h *SEOHandler) RSSFeed(c *gin.Context) {
	posts, err := h.posts.Recent(c.Request.Context(), feedSize)
	if err != nil {
		code, msg := errorMessage(c, err)
		c.String(code, msg)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>约拍</title>
    <link>` + h.siteURL + `</link>
    <description>摄影师、模特和化妆师的约拍信息</description>
    <language>zh-CN</language>
    <lastBuildDate>` + time.Now().Format(time.RFC1123Z) + `</lastBuildDate>
    <atom:link href="` + h.siteURL + `/feed.xml" rel="self" type="application/rss+xml"/>
`)
	for _, post := range posts {
		link := fmt.Sprintf("%s/p/%d", h.siteURL, post.ID)
		b.WriteString(`    <item>
      <title>` + escapeXML(feedTitle(post)) + `</title>
      <link>` + link + `</link>
      <description><![CDATA[` + renderFeedContent(post) + `]]></description>
      <author>` + escapeXML(post.Owner.UserName) + `</author>
      <category>` + escapeXML(post.RequiredRegionName) + `</category>
      <pubDate>` + post.CreatedAt.Format(time.RFC1123Z) + `</pubDate>
      <guid isPermaLink="true">` + link + `</guid>
    </item>
`)
	}
	b.WriteString(`  </channel>
</rss>`)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

// feedTitle 形如"摄影师 阿青 · 西湖区 · 互免"
func feedTitle(post models.Post) string {
	parts := []string{strings.TrimSpace(post.Owner.Identity + " " + post.Owner.UserName)}
	if post.RequiredRegionName != "" {
		parts = append(parts, post.RequiredRegionName)
	}
	if post.CostOption != "" {
		parts = append(parts, post.CostOption)
	}
	return strings.Join(parts, " · ")
}

// renderFeedContent 正文和附加照片
func renderFeedContent(post models.Post) string {
	var b strings.Builder
	b.WriteString(string(utils.RenderContent(post.Content)))
	for _, u := range post.PhotoURLs {
		fmt.Fprintf(&b, `<p><img src="%s" alt=""></p>`, html.EscapeString(u))
	}
	return b.String()
}

// escapeXML 转义XML特殊字符
func escapeXML(s string) string {
	return html.EscapeString(s)
}
