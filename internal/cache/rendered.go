package cache

// Rendered HTML depends only on the markdown source and the engine. Highlighted code uses CSS
// classes, so the syntax theme is not part of the key.
type renderKey struct {
	contentHash string
	engine      string
}

var renderedMarkdownCache = NewCache[renderKey, []byte]()

func GetRenderedMarkdown(contentHash, engine string) ([]byte, bool) {
	return renderedMarkdownCache.Get(renderKey{contentHash, engine})
}

func SetRenderedMarkdown(contentHash, engine string, html []byte) {
	renderedMarkdownCache.Set(renderKey{contentHash, engine}, html)
}

func DeleteRenderedMarkdown(contentHash, engine string) {
	renderedMarkdownCache.Delete(renderKey{contentHash, engine})
}

func RenderedMarkdownLen() int {
	return renderedMarkdownCache.Len()
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}
