// Package i18n holds the translated messages shown with editor notifications.
package i18n

import (
	"golang.org/x/text/language"
)

// Translator looks up a message by key. Unknown keys translate to themselves.
type Translator interface {
	Get(key string) string
}

var supported = []language.Tag{
	language.English,
	language.Chinese,
}

var messages = map[language.Tag]map[string]string{
	language.English: {
		"yaml_format_error_message":     "YAML format error",
		"multi_yaml_resource_warning":   "Only the first resource in the YAML is used",
		"fileupload_binary_unsupported": "Binary files are not supported",
		"resource_load_fail":            "Failed to load resource",
		"resource_create_succ":          "Resource created",
		"resource_create_fail":          "Failed to create resource",
		"resource_update_succ":          "Resource updated",
		"resource_update_fail":          "Failed to update resource",
		"resource_validation_fail":      "Please fix the highlighted fields",
		"duplicate_key_warning":         "Duplicate keys found, the last value wins",
		"resource_encode_fail":          "The resource could not be shown as YAML",
		"secret_type_basic_auth":        "Username/Password",
		"secret_type_ssh_auth":          "SSH",
		"secret_type_dockerconfigjson":  "Image Registry",
		"secret_type_oauth2":            "OAuth2",
	},
	language.Chinese: {
		"yaml_format_error_message":     "YAML 格式错误",
		"multi_yaml_resource_warning":   "仅使用 YAML 中的第一个资源",
		"fileupload_binary_unsupported": "不支持二进制文件",
		"resource_load_fail":            "资源加载失败",
		"resource_create_succ":          "资源创建成功",
		"resource_create_fail":          "资源创建失败",
		"resource_update_succ":          "资源更新成功",
		"resource_update_fail":          "资源更新失败",
		"resource_validation_fail":      "请修正标记的字段",
		"duplicate_key_warning":         "存在重复的键，以最后一个值为准",
		"resource_encode_fail":          "无法以 YAML 展示该资源",
		"secret_type_basic_auth":        "用户名/密码",
		"secret_type_ssh_auth":          "SSH",
		"secret_type_dockerconfigjson":  "镜像服务",
		"secret_type_oauth2":            "OAuth2",
	},
}

// Catalog negotiates a locale against the supported message tables.
type Catalog struct {
	matcher  language.Matcher
	fallback language.Tag
}

// NewCatalog returns a catalog falling back to defaultLocale when nothing matches.
func NewCatalog(defaultLocale string) *Catalog {
	c := &Catalog{matcher: language.NewMatcher(supported), fallback: language.English}
	c.fallback = c.match(defaultLocale)
	return c
}

// Translator returns the message table best matching locale (an Accept-Language value or a tag).
func (c *Catalog) Translator(locale string) Translator {
	return table(messages[c.match(locale)])
}

func (c *Catalog) match(locale string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return supported[idx]
}

type table map[string]string

func (t table) Get(key string) string {
	if msg, ok := t[key]; ok {
		return msg
	}
	return key
}
