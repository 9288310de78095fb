package router

import (
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"time"
	"yuepai/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// views 页面模板，键与 handler 中使用的名称一致
var views = []string{
	"post/list.html",
	"post/detail.html",
	"post/edit.html",
	"user/new.html",
	"notification/list.html",
	"error.html",
}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t time.Time) string {
			return utils.TimeAgo(t)
		},
		"contains": func(items []string, item string) bool {
			for _, s := range items {
				if s == item {
					return true
				}
			}
			return false
		},
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
	}
}

// LoadTemplates 每个页面与 layouts、components 组合成独立模板，避免 block 名冲突
func LoadTemplates(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	components, err := filepath.Glob(filepath.Join(templatesDir, "components", "*.html"))
	if err != nil {
		return nil, err
	}

	funcMap := FuncMap()
	for _, view := range views {
		files := make([]string, 0, len(layouts)+len(components)+1)
		files = append(files, layouts...)
		files = append(files, components...)
		files = append(files, filepath.Join(templatesDir, "views", view))

		tmpl, err := template.New(filepath.Base(files[0])).Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("加载模板 %s 失败: %w", view, err)
		}
		r.Add(view, tmpl)
	}
	return r, nil
}
