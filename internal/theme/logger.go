package theme

import "github.com/rs/zerolog"

var themeLogger zerolog.Logger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	themeLogger = l
}
