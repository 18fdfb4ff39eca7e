// Command newpost writes a post into the configured storage from the terminal, the same way the
// admin API does.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/model"
	"github.com/debemdeboas/inkwell/internal/render"
	"github.com/debemdeboas/inkwell/internal/repository"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/joho/godotenv"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var errRequired = errors.New("제목과 본문은 필수입니다.")

func main() {
	bodyFile := flag.String("body", "", "Read the markdown body from this file instead of the terminal")
	configPath := flag.String("config", config.DefaultConfigPath, "Config file naming the storage")
	flag.Parse()

	godotenv.Load()

	if err := run(*configPath, *bodyFile, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(configPath, bodyFile string, in io.Reader, out io.Writer) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	config.ApplyEnv(cfg, os.Getenv)

	meta, body, err := readPost(in, out, bodyFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	storage, err := repository.NewStorage(ctx, cfg.Storage, cfg.Secrets)
	if err != nil {
		return err
	}
	if c, ok := storage.(io.Closer); ok {
		defer c.Close()
	}

	renderer, err := render.New(cfg.Markdown.Engine)
	if err != nil {
		return err
	}

	saved, err := repository.NewContentStore(storage, renderer).SavePost(ctx, meta, body)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, outputStyle.Render(fmt.Sprintf("Saved %q as /post/%s (%s)", saved.Title, saved.Slug, saved.Date)))
	return nil
}

// readPost asks for the post metadata line by line, then reads the body either from bodyFile or
// from the rest of in.
func readPost(in io.Reader, out io.Writer, bodyFile string) (model.PostMeta, string, error) {
	reader := bufio.NewReader(in)

	ask := func(label, def string) (string, error) {
		prompt := promptStyle.Render(label + ": ")
		if def != "" {
			prompt += hintStyle.Render("[" + def + "] ")
		}
		fmt.Fprint(out, prompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
		return def, nil
	}

	title, err := ask("Title", "")
	if err != nil {
		return model.PostMeta{}, "", err
	}
	if title == "" {
		return model.PostMeta{}, "", errRequired
	}

	slug, err := ask("Slug", util.Slugify(title))
	if err != nil {
		return model.PostMeta{}, "", err
	}
	if !repository.ValidSlug(slug) {
		return model.PostMeta{}, "", fmt.Errorf("%w: %q", repository.ErrInvalidSlug, slug)
	}

	description, err := ask("Description", "")
	if err != nil {
		return model.PostMeta{}, "", err
	}

	tagLine, err := ask("Tags (comma separated)", "")
	if err != nil {
		return model.PostMeta{}, "", err
	}

	var body []byte
	if bodyFile != "" {
		body, err = os.ReadFile(bodyFile)
	} else {
		fmt.Fprintln(out, promptStyle.Render("Body")+hintStyle.Render(" (markdown, end with Ctrl+D)"))
		body, err = io.ReadAll(reader)
	}
	if err != nil {
		return model.PostMeta{}, "", err
	}
	if strings.TrimSpace(string(body)) == "" {
		return model.PostMeta{}, "", errRequired
	}

	meta := model.PostMeta{
		Slug:        model.Slug(slug),
		Title:       title,
		Description: description,
		Tags:        splitTags(tagLine),
	}
	return meta, string(body), nil
}

func splitTags(line string) []string {
	tags := []string{}
	for _, tag := range strings.Split(line, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
