package view

import (
	"html/template"
	"net/url"
	"time"

	"office-asset-web/internal/model"
)

// DisplayDate is how dates are shown in tables and dialogs.
const DisplayDate = "02/01/2006"

var funcs = template.FuncMap{
	"date":     formatDate,
	"datep":    formatDatePtr,
	"href":     href,
	"sortMark": sortMark,
	"hasError": func(errs map[string]string, key string) bool {
		_, ok := errs[key]
		return ok
	},
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDate)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func href(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func sortMark(c Column) string {
	if !c.Sorted {
		return ""
	}
	if c.Order == model.OrderDesc {
		return "▼"
	}
	return "▲"
}
