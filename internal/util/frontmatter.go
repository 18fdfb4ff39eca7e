package util

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block at the top of a post file.
type FrontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Date        Date     `yaml:"date" toml:"date"`
	Description string   `yaml:"description" toml:"description"`
	Tags        []string `yaml:"tags" toml:"tags"`
}

// Date keeps the front matter date as the author wrote it. TOML front matter carries native
// dates, which are formatted back to ISO-8601.
type Date string

func (d *Date) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case string:
		*d = Date(value)
	case time.Time:
		if value.Hour() == 0 && value.Minute() == 0 && value.Second() == 0 && value.Nanosecond() == 0 {
			*d = Date(value.Format(time.DateOnly))
		} else {
			*d = Date(value.Format(time.RFC3339))
		}
	case nil:
		*d = ""
	default:
		return fmt.Errorf("unsupported date value %v (%T)", v, v)
	}
	return nil
}

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// ParseFrontMatter splits a post file into its metadata and markdown body. YAML (---) and
// TOML (+++) blocks are accepted. A file without front matter yields an empty FrontMatter and
// the whole input as body.
func ParseFrontMatter(source []byte) (*FrontMatter, []byte, error) {
	var fm FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &fm, frontMatterFormats...)
	if err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}

	return &fm, body, nil
}

// yamlFrontMatter fixes the key order and keeps empty values, matching files written by the
// original gray-matter serializer.
type yamlFrontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// EncodeFrontMatter renders a post file: a YAML front matter block followed by the body.
func EncodeFrontMatter(fm FrontMatter, body []byte) ([]byte, error) {
	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}

	meta, err := yaml.Marshal(yamlFrontMatter{
		Title:       fm.Title,
		Date:        string(fm.Date),
		Description: fm.Description,
		Tags:        tags,
	})
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(meta) + len(body) + 16)
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	buf.Write(body)
	if len(body) == 0 || body[len(body)-1] != '\n' {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
